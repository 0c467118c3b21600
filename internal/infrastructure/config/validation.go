package config

import (
	"fmt"
	"strings"

	"github.com/bnema/instapreview/internal/domain/preview"
)

// Validate checks cfg and reports every invalid key at once.
func Validate(cfg *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validatePreview(&cfg.Preview)...)
	validationErrors = append(validationErrors, validateLogging(&cfg.Logging)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validatePreview(p *PreviewConfig) []string {
	var validationErrors []string
	if p.PollIntervalMs <= 0 {
		validationErrors = append(validationErrors, "preview.poll_interval_ms must be positive")
	}
	if p.DebounceMs < 0 {
		validationErrors = append(validationErrors, "preview.debounce_ms must be non-negative")
	}
	if p.TopDestinationsLimit < 1 || p.TopDestinationsLimit > maxTopDestinationsLimit {
		validationErrors = append(validationErrors,
			fmt.Sprintf("preview.top_destinations_limit must be between 1 and %d", maxTopDestinationsLimit))
	}
	if p.MaxRows < 1 {
		validationErrors = append(validationErrors, "preview.max_rows must be at least 1")
	}
	if len(p.EligibleSchemes) == 0 {
		validationErrors = append(validationErrors, "preview.eligible_schemes must not be empty")
	}
	for _, s := range p.EligibleSchemes {
		if preview.Scheme(s+":") == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("preview.eligible_schemes: %q is not a URI scheme", s))
		}
	}
	return validationErrors
}

func validateLogging(l *LoggingConfig) []string {
	var validationErrors []string
	switch strings.ToLower(l.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level: unknown level %q", l.Level))
	}
	switch l.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	return validationErrors
}
