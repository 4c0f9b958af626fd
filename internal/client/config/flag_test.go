package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		expected    *Config
	}{
		{
			name: "overrides from flags",
			args: []string{"cmd", "-s", "http://127.0.0.1:9090", "-d", "alt.db", "-w", "5", "-i", "10"},
			expected: &Config{
				ServerBaseURL:        "http://127.0.0.1:9090",
				DatabasePath:         "alt.db",
				StorageWatchInterval: 5 * time.Second,
				OnlineCheckInterval:  10 * time.Second,
			},
		},
		{
			name:        "invalid interval panics",
			args:        []string{"cmd", "-i", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
