// Package config loads, validates and watches the instapreview configuration.
package config

import "time"

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete configuration for instapreview.
type Config struct {
	// Preview tunes the instant preview engine.
	Preview  PreviewConfig  `mapstructure:"preview" toml:"preview" json:"preview"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
}

// PreviewConfig holds the instant preview settings.
type PreviewConfig struct {
	// Enabled turns the feature on for every browser window.
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled" jsonschema:"default=true"`
	// PollIntervalMs is the delay between two suggestion-popup checks.
	PollIntervalMs int `mapstructure:"poll_interval_ms" toml:"poll_interval_ms" json:"poll_interval_ms" jsonschema:"minimum=1,default=100"`
	// DebounceMs is how long a cached-icon suggestion must stay selected
	// before it is previewed. 0 disables the debounce.
	DebounceMs int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" jsonschema:"minimum=0,default=5000"`
	// TopDestinationsLimit is how many frecent destinations skip the debounce.
	TopDestinationsLimit int `mapstructure:"top_destinations_limit" toml:"top_destinations_limit" json:"top_destinations_limit" jsonschema:"minimum=1,maximum=1000,default=100"`
	// EligibleSchemes lists the URI schemes that may be previewed.
	EligibleSchemes []string `mapstructure:"eligible_schemes" toml:"eligible_schemes" json:"eligible_schemes" jsonschema:"minItems=1"`
	// MaxRows is the popup row count while previews are active.
	MaxRows int `mapstructure:"max_rows" toml:"max_rows" json:"max_rows" jsonschema:"minimum=1,default=3"`
}

// PollInterval returns PollIntervalMs as a duration.
func (p PreviewConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalMs) * time.Millisecond
}

// DebounceDelay returns DebounceMs as a duration.
func (p PreviewConfig) DebounceDelay() time.Duration {
	return time.Duration(p.DebounceMs) * time.Millisecond
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	// Path of the history database. Empty means the XDG data directory.
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
}
