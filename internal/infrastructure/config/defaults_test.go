package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/instapreview/internal/domain/preview"
)

func TestDefaultConfig_Preview(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Preview.Enabled)
	assert.Equal(t, 100*time.Millisecond, cfg.Preview.PollInterval())
	assert.Equal(t, preview.DefaultDebounceDelay, cfg.Preview.DebounceDelay())
	assert.Equal(t, preview.DefaultTopDestinationsLimit, cfg.Preview.TopDestinationsLimit)
	assert.Equal(t, preview.DefaultEligibleSchemes, cfg.Preview.EligibleSchemes)
	assert.Equal(t, 3, cfg.Preview.MaxRows)
	assert.NoError(t, Validate(cfg))
}

func TestDefaultConfig_SchemesAreNotShared(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preview.EligibleSchemes[0] = "gopher"

	assert.Equal(t, "data", preview.DefaultEligibleSchemes[0])
}
