// Package config provides configuration management for applications
// embedding the toolkit.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/faultkit/faultkit/observability"
	"github.com/faultkit/faultkit/retry"
)

// Config is the root configuration.
type Config struct {
	// Service is the service name used in logs and metrics.
	Service string `yaml:"service"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// Retry configures the default retry policy.
	Retry RetryConfig `yaml:"retry"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// RetryConfig is the serializable view of a retry policy. Absent fields
// fall back to the retry package defaults; an absent maxRetries means
// the default budget, not zero.
type RetryConfig struct {
	MaxRetries    *int     `yaml:"maxRetries"`
	Strategy      string   `yaml:"strategy"`
	InitialDelay  Duration `yaml:"initialDelay"`
	MaxDelay      Duration `yaml:"maxDelay"`
	DisableJitter bool     `yaml:"disableJitter"`
	Operation     string   `yaml:"operation"`
}

// Policy converts the serializable view into an executable retry policy.
func (r RetryConfig) Policy() *retry.Policy {
	p := retry.NewPolicy()
	if r.MaxRetries != nil {
		p.MaxRetries = *r.MaxRetries
	}
	if r.Strategy != "" {
		// Unknown strategies pass through; the executor treats them
		// as fixed rather than failing.
		p.Strategy = retry.Strategy(r.Strategy)
	}
	if r.InitialDelay > 0 {
		p.InitialDelay = r.InitialDelay.Duration()
	}
	if r.MaxDelay > 0 {
		p.MaxDelay = r.MaxDelay.Duration()
	}
	p.DisableJitter = r.DisableJitter
	p.Operation = r.Operation
	return p
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Service: "faultkit",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// Load loads and parses a YAML configuration file from the specified
// path, applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path is a directory, not a file: %s", path)
	}

	// G304: path is validated above via os.Stat and comes from trusted
	// configuration.
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset fields in place.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Service == "" {
		c.Service = def.Service
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Log.Output == "" {
		c.Log.Output = def.Log.Output
	}
}

// Validate validates the configuration. Retry policy values are
// deliberately not validated: unknown strategies and out-of-range values
// degrade to defaults at execution time instead of failing.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	switch c.Log.Output {
	case "", "stdout", "stderr":
	default:
		return fmt.Errorf("invalid log output: %s", c.Log.Output)
	}

	if _, err := observability.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// LoggerConfig returns the observability configuration view of the log
// block.
func (c *Config) LoggerConfig() observability.LogConfig {
	return observability.LogConfig{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: c.Log.Output,
	}
}
