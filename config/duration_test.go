package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"milliseconds", `d: 300ms`, 300 * time.Millisecond, false},
		{"seconds", `d: 30s`, 30 * time.Second, false},
		{"compound", `d: 1h30m`, 90 * time.Minute, false},
		{"empty string", `d: ""`, 0, false},
		{"invalid", `d: soon`, 0, true},
		{"bare number", `d: 5`, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out struct {
				D Duration `yaml:"d"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.D.Duration())
		})
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	t.Parallel()

	in := struct {
		D Duration `yaml:"d"`
	}{D: Duration(90 * time.Second)}

	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, "d: 1m30s\n", string(data))
}
