package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero debounce allowed", mutate: func(c *Config) { c.Preview.DebounceMs = 0 }},
		{name: "zero poll interval", mutate: func(c *Config) { c.Preview.PollIntervalMs = 0 }, wantKey: "preview.poll_interval_ms"},
		{name: "negative debounce", mutate: func(c *Config) { c.Preview.DebounceMs = -1 }, wantKey: "preview.debounce_ms"},
		{name: "limit too small", mutate: func(c *Config) { c.Preview.TopDestinationsLimit = 0 }, wantKey: "preview.top_destinations_limit"},
		{name: "limit too large", mutate: func(c *Config) { c.Preview.TopDestinationsLimit = 1001 }, wantKey: "preview.top_destinations_limit"},
		{name: "no rows", mutate: func(c *Config) { c.Preview.MaxRows = 0 }, wantKey: "preview.max_rows"},
		{name: "no schemes", mutate: func(c *Config) { c.Preview.EligibleSchemes = nil }, wantKey: "preview.eligible_schemes"},
		{name: "bad scheme", mutate: func(c *Config) { c.Preview.EligibleSchemes = []string{"ht tp"} }, wantKey: "preview.eligible_schemes"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantKey: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantKey: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestValidate_ReportsEveryKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preview.PollIntervalMs = -5
	cfg.Preview.MaxRows = 0

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview.poll_interval_ms")
	assert.Contains(t, err.Error(), "preview.max_rows")
}
