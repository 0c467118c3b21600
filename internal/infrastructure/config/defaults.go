package config

import "github.com/bnema/instapreview/internal/domain/preview"

const (
	defaultPollIntervalMs       = 100
	defaultDebounceMs           = 5000
	defaultTopDestinationsLimit = 100
	defaultMaxRows              = 3
	maxTopDestinationsLimit     = 1000
)

// DefaultConfig returns the default configuration. Database.Path is filled
// in by the loader.
func DefaultConfig() *Config {
	return &Config{
		Preview: PreviewConfig{
			Enabled:              true,
			PollIntervalMs:       defaultPollIntervalMs,
			DebounceMs:           defaultDebounceMs,
			TopDestinationsLimit: defaultTopDestinationsLimit,
			EligibleSchemes:      append([]string(nil), preview.DefaultEligibleSchemes...),
			MaxRows:              defaultMaxRows,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
