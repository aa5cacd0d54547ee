package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.NotEmpty(t, cfg.Paths.SearchDirs)
	assert.Contains(t, cfg.Paths.SearchDirs, "/Applications")
	assert.NotEmpty(t, cfg.Paths.CachePath)
	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.Equal(t, "50ms", cfg.Search.QueryDebounce)
	assert.Equal(t, "3s", cfg.Watch.Debounce)
	assert.True(t, cfg.History.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestConfig_DurationAccessors(t *testing.T) {
	cfg := NewConfig()

	d, err := cfg.QueryDebounce()
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, d)

	d, err = cfg.WatchDebounce()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)
}

func TestLoadFromFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  search_dirs:
    - /opt/apps
search:
  max_results: 50
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := NewConfig()
	require.NoError(t, cfg.loadFromFile(path))

	assert.Equal(t, []string{"/opt/apps"}, cfg.Paths.SearchDirs)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched fields keep defaults
	assert.Equal(t, "50ms", cfg.Search.QueryDebounce)
}

func TestLoadFromFile_MissingFileUsesDefaults(t *testing.T) {
	cfg := NewConfig()
	err := cfg.loadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Search.MaxResults)
}

func TestLoadFromFile_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml:::"), 0o644))

	cfg := NewConfig()
	assert.Error(t, cfg.loadFromFile(path))
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("APPDEX_CACHE_PATH", "/tmp/appdex-test/apps.json")
	t.Setenv("APPDEX_MAX_RESULTS", "7")
	t.Setenv("APPDEX_LOG_LEVEL", "warn")
	t.Setenv("APPDEX_HISTORY_ENABLED", "false")

	cfg := NewConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "/tmp/appdex-test/apps.json", cfg.Paths.CachePath)
	assert.Equal(t, 7, cfg.Search.MaxResults)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.History.Enabled)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty search dirs", func(c *Config) { c.Paths.SearchDirs = nil }},
		{"empty cache path", func(c *Config) { c.Paths.CachePath = "" }},
		{"negative max results", func(c *Config) { c.Search.MaxResults = -1 }},
		{"bad query debounce", func(c *Config) { c.Search.QueryDebounce = "fast" }},
		{"bad watch debounce", func(c *Config) { c.Watch.Debounce = "sometimes" }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := NewConfig()
	cfg.Search.MaxResults = 42
	require.NoError(t, cfg.WriteYAML(path))

	loaded := NewConfig()
	require.NoError(t, loaded.loadFromFile(path))
	assert.Equal(t, 42, loaded.Search.MaxResults)
}
