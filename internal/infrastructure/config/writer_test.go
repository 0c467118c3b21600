package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfigOrdered(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/history.sqlite"

	require.NoError(t, WriteConfigOrdered(cfg, configPath))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var sections []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sections = append(sections, line)
		}
	}
	assert.Equal(t, []string{"[database]", "[logging]", "[preview]"}, sections)
	assert.True(t, strings.HasPrefix(string(content), "#"))

	var decoded Config
	require.NoError(t, toml.Unmarshal(content, &decoded))
	assert.Equal(t, *cfg, decoded)
}

func TestWriteConfigOrdered_NilConfig(t *testing.T) {
	assert.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "config.toml")))
}

func TestSortTOMLSections(t *testing.T) {
	in := "top = 1\n[b]\nx = 1\n\n[a]\ny = 2\n"

	out := sortTOMLSections(in)

	assert.Equal(t, "top = 1\n\n[a]\ny = 2\n\n[b]\nx = 1\n", out)
	assert.Empty(t, sortTOMLSections(""))
}
