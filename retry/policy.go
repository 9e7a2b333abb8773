package retry

import (
	"time"

	"go.uber.org/zap"
)

// Default retry configuration constants.
const (
	// DefaultMaxRetries is the default maximum number of retry attempts.
	DefaultMaxRetries = 3

	// DefaultInitialDelay is the default delay before the first retry.
	DefaultInitialDelay = time.Second

	// DefaultMaxDelay is the default delay cap.
	DefaultMaxDelay = 30 * time.Second
)

// Strategy selects how the delay grows between attempts.
type Strategy string

const (
	// StrategyExponential doubles the delay on every attempt.
	StrategyExponential Strategy = "exponential"

	// StrategyLinear grows the delay proportionally to the attempt number.
	StrategyLinear Strategy = "linear"

	// StrategyFixed uses the initial delay for every attempt.
	StrategyFixed Strategy = "fixed"
)

// Condition decides whether an error should trigger another attempt.
type Condition func(error) bool

// OnRetryFunc is called before each wait, with the failure that triggered
// the retry and the 1-based attempt number that just failed.
type OnRetryFunc func(err error, attempt int)

// Policy defines the retry policy configuration. The zero value of every
// duration and the empty strategy are replaced with defaults at execution
// time; MaxRetries is taken as-is (0 means a single attempt) and only a
// nil policy falls back to DefaultMaxRetries.
type Policy struct {
	// MaxRetries is the maximum number of retry attempts after the
	// first one. Negative values are treated as 0.
	MaxRetries int

	// Strategy is the backoff strategy. Unrecognized values behave
	// like StrategyFixed; misconfiguration is never an error.
	Strategy Strategy

	// InitialDelay is the base delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the computed delay before jitter is applied.
	MaxDelay time.Duration

	// DisableJitter turns off the symmetric +-25% jitter.
	DisableJitter bool

	// Operation names the guarded operation in metrics and span events.
	Operation string

	// RetryIf decides whether a failure is retried. Nil retries every
	// failure.
	RetryIf Condition

	// OnRetry is called before each wait. A panic inside it aborts the
	// whole retry sequence.
	OnRetry OnRetryFunc

	// Logger logs retry attempts at debug level when set.
	Logger *zap.Logger
}

// NewPolicy returns a Policy with default values.
func NewPolicy() *Policy {
	return &Policy{
		MaxRetries:   DefaultMaxRetries,
		Strategy:     StrategyExponential,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
	}
}

// normalized returns a copy of the policy with defaults filled in. A nil
// receiver yields the default policy.
func (p *Policy) normalized() Policy {
	if p == nil {
		return *NewPolicy()
	}

	out := *p
	if out.MaxRetries < 0 {
		out.MaxRetries = 0
	}
	if out.Strategy == "" {
		out.Strategy = StrategyExponential
	}
	if out.InitialDelay <= 0 {
		out.InitialDelay = DefaultInitialDelay
	}
	if out.MaxDelay <= 0 {
		out.MaxDelay = DefaultMaxDelay
	}
	return out
}

// operation returns the metrics label for the policy.
func (p Policy) operation() string {
	if p.Operation == "" {
		return "unnamed"
	}
	return p.Operation
}

// WithMaxRetries sets the maximum retries.
func (p *Policy) WithMaxRetries(n int) *Policy {
	p.MaxRetries = n
	return p
}

// WithStrategy sets the backoff strategy.
func (p *Policy) WithStrategy(s Strategy) *Policy {
	p.Strategy = s
	return p
}

// WithInitialDelay sets the base delay.
func (p *Policy) WithInitialDelay(d time.Duration) *Policy {
	p.InitialDelay = d
	return p
}

// WithMaxDelay sets the delay cap.
func (p *Policy) WithMaxDelay(d time.Duration) *Policy {
	p.MaxDelay = d
	return p
}

// WithoutJitter disables jitter.
func (p *Policy) WithoutJitter() *Policy {
	p.DisableJitter = true
	return p
}

// WithOperation sets the operation name used in metrics and span events.
func (p *Policy) WithOperation(name string) *Policy {
	p.Operation = name
	return p
}

// WithRetryIf sets the retry predicate.
func (p *Policy) WithRetryIf(cond Condition) *Policy {
	p.RetryIf = cond
	return p
}

// WithOnRetry sets the per-retry callback.
func (p *Policy) WithOnRetry(fn OnRetryFunc) *Policy {
	p.OnRetry = fn
	return p
}

// WithLogger sets the logger.
func (p *Policy) WithLogger(logger *zap.Logger) *Policy {
	p.Logger = logger
	return p
}

// NoRetryPolicy returns a policy that performs exactly one attempt.
func NoRetryPolicy() *Policy {
	return &Policy{
		MaxRetries:   0,
		Strategy:     StrategyFixed,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
	}
}
