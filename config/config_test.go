package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/jump/jump.db", cfg.DataPath)
	assert.Equal(t, 0.6, cfg.FuzzyThreshold)
	assert.Equal(t, 9, cfg.TabEntries)
	assert.Equal(t, "__", cfg.TabSeparator)
	assert.Equal(t, 10.0, cfg.IncreaseWeight)
	assert.Equal(t, 15.0, cfg.DecreaseWeight)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Exclude)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "jump"), 0755))

	content := `
fuzzy_threshold = 0.75
tab_entries = 5
exclude = ["/tmp", "node_modules"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jump", "config.toml"), []byte(content), 0644))
	t.Setenv("JUMP_TAB_ENTRIES", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.FuzzyThreshold)
	assert.Equal(t, 3, cfg.TabEntries, "env overrides file")
	assert.Equal(t, []string{"/tmp", "node_modules"}, cfg.Exclude)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("fuzzy_threshold = 1.5\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty separator", func(c *Config) { c.TabSeparator = "" }},
		{"digit separator", func(c *Config) { c.TabSeparator = "_1" }},
		{"too many tab entries", func(c *Config) { c.TabEntries = 10 }},
		{"negative weight", func(c *Config) { c.DecreaseWeight = -1 }},
		{"zero picker limit", func(c *Config) { c.PickerLimit = 0 }},
		{"empty data path", func(c *Config) { c.DataPath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.DataPath = "/x/jump.db"
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	cfg := Default()
	cfg.DataPath = "/x/jump.db"
	assert.NoError(t, cfg.Validate())
}
