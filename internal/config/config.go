// Package config provides configuration loading for AppDex.
//
// Configuration is resolved in three steps: built-in defaults, an optional
// YAML file (~/.config/appdex/config.yaml), and APPDEX_* environment
// variable overrides (highest precedence).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete AppDex configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" json:"paths"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
	History HistoryConfig `yaml:"history" json:"history"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// PathsConfig configures where bundles are discovered and state is kept.
type PathsConfig struct {
	// SearchDirs is the ordered list of directories scanned for bundles.
	// Only immediate children are considered.
	SearchDirs []string `yaml:"search_dirs" json:"search_dirs"`

	// CachePath is the persisted index snapshot location.
	CachePath string `yaml:"cache_path" json:"cache_path"`
}

// SearchConfig configures query evaluation.
type SearchConfig struct {
	// MaxResults caps the number of entries returned per query.
	MaxResults int `yaml:"max_results" json:"max_results"`

	// QueryDebounce is the quiet period before a submitted query is
	// evaluated. Rapid keystrokes collapse into one evaluation.
	QueryDebounce string `yaml:"query_debounce" json:"query_debounce"`

	// CacheSize is the number of query results kept in the LRU cache.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// WatchConfig configures filesystem change detection.
type WatchConfig struct {
	// Enabled controls whether search directories are watched.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Debounce is the quiet period before a burst of filesystem events
	// triggers one reconciliation.
	Debounce string `yaml:"debounce" json:"debounce"`

	// PollInterval is the interval for the polling fallback.
	PollInterval string `yaml:"poll_interval" json:"poll_interval"`
}

// HistoryConfig configures the launch history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultSearchDirs returns the ordered list of bundle locations.
// The per-user directory may legitimately not exist.
func DefaultSearchDirs() []string {
	dirs := []string{
		"/Applications",
		"/System/Applications",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Applications"))
	}
	return dirs
}

// DataDir returns the application-private state directory under the
// per-user support path.
func DataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "appdex")
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			SearchDirs: DefaultSearchDirs(),
			CachePath:  filepath.Join(DataDir(), "apps.json"),
		},
		Search: SearchConfig{
			MaxResults:    20,
			QueryDebounce: "50ms",
			CacheSize:     128,
		},
		Watch: WatchConfig{
			Enabled:      true,
			Debounce:     "3s",
			PollInterval: "30s",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(DataDir(), "history.db"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// UserConfigPath returns the path of the user configuration file.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "appdex", "config.yaml")
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "appdex", "config.yaml")
	}
	return filepath.Join(base, "appdex", "config.yaml")
}

// Load resolves the effective configuration: defaults, then the user config
// file (if present), then environment overrides, then validation.
func Load() (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFromFile(UserConfigPath()); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromFile merges configuration from a YAML file. A missing file is
// fine; defaults apply.
func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if len(other.Paths.SearchDirs) > 0 {
		c.Paths.SearchDirs = other.Paths.SearchDirs
	}
	if other.Paths.CachePath != "" {
		c.Paths.CachePath = other.Paths.CachePath
	}
	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if other.Search.QueryDebounce != "" {
		c.Search.QueryDebounce = other.Search.QueryDebounce
	}
	if other.Search.CacheSize != 0 {
		c.Search.CacheSize = other.Search.CacheSize
	}
	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Watch.PollInterval != "" {
		c.Watch.PollInterval = other.Watch.PollInterval
	}
	if other.History.Path != "" {
		c.History.Path = other.History.Path
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// applyEnvOverrides applies APPDEX_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("APPDEX_CACHE_PATH"); v != "" {
		c.Paths.CachePath = v
	}
	if v := os.Getenv("APPDEX_SEARCH_DIRS"); v != "" {
		c.Paths.SearchDirs = filepath.SplitList(v)
	}
	if v := os.Getenv("APPDEX_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("APPDEX_QUERY_DEBOUNCE"); v != "" {
		c.Search.QueryDebounce = v
	}
	if v := os.Getenv("APPDEX_WATCH_DEBOUNCE"); v != "" {
		c.Watch.Debounce = v
	}
	if v := os.Getenv("APPDEX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("APPDEX_HISTORY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.History.Enabled = b
		}
	}
}

// Validate checks the final configuration.
func (c *Config) Validate() error {
	if len(c.Paths.SearchDirs) == 0 {
		return fmt.Errorf("paths.search_dirs must not be empty")
	}
	if c.Paths.CachePath == "" {
		return fmt.Errorf("paths.cache_path must not be empty")
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must be non-negative, got %d", c.Search.MaxResults)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size must be non-negative, got %d", c.Search.CacheSize)
	}
	if _, err := c.QueryDebounce(); err != nil {
		return fmt.Errorf("search.query_debounce: %w", err)
	}
	if _, err := c.WatchDebounce(); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	if _, err := c.PollInterval(); err != nil {
		return fmt.Errorf("watch.poll_interval: %w", err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Log.Level)
	}

	return nil
}

// QueryDebounce returns the parsed query debounce duration.
func (c *Config) QueryDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Search.QueryDebounce)
}

// WatchDebounce returns the parsed watch debounce duration.
func (c *Config) WatchDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Watch.Debounce)
}

// PollInterval returns the parsed polling fallback interval.
func (c *Config) PollInterval() (time.Duration, error) {
	return time.ParseDuration(c.Watch.PollInterval)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
