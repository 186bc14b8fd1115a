package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the public OMDb endpoint
const DefaultBaseURL = "https://www.omdbapi.com/"

// Config holds all application configuration
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OMDbConfig holds movie API configuration
type OMDbConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables pacing
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	MinQueryLength int  `mapstructure:"min_query_length"`
	RankResults    bool `mapstructure:"rank_results"`
}

// StorageConfig holds the watched list database location
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowSummary bool `mapstructure:"show_summary"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			BaseURL:           DefaultBaseURL,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
		},
		Search: SearchConfig{
			MinQueryLength: 3,
			RankResults:    true,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "popcorn.db"),
		},
		UI: UIConfig{
			ShowSummary: true,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "popcorn.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "popcorn")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "popcorn")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "popcorn")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "popcorn")
	}
}

// newViper builds a viper instance seeded with defaults so that every key is
// known to AutomaticEnv (POPCORN_OMDB_API_KEY, POPCORN_SEARCH_MIN_QUERY_LENGTH, ...)
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("POPCORN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("omdb.api_key", cfg.OMDb.APIKey)
	v.SetDefault("omdb.base_url", cfg.OMDb.BaseURL)
	v.SetDefault("omdb.timeout", cfg.OMDb.Timeout)
	v.SetDefault("omdb.requests_per_second", cfg.OMDb.RequestsPerSecond)
	v.SetDefault("search.min_query_length", cfg.Search.MinQueryLength)
	v.SetDefault("search.rank_results", cfg.Search.RankResults)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("ui.show_summary", cfg.UI.ShowSummary)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	return v
}

// LoadConfig loads configuration from file and environment.
// When path is empty the default config directory and "." are searched;
// a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	if cfg.OMDb.BaseURL == "" {
		cfg.OMDb.BaseURL = DefaultBaseURL
	}
	if cfg.Search.MinQueryLength < 0 {
		cfg.Search.MinQueryLength = 0
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path (default: <config dir>/config.yaml)
func SaveConfig(cfg *Config, path string) (string, error) {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("omdb.api_key", cfg.OMDb.APIKey)
	v.Set("omdb.base_url", cfg.OMDb.BaseURL)
	v.Set("omdb.timeout", cfg.OMDb.Timeout.String())
	v.Set("omdb.requests_per_second", cfg.OMDb.RequestsPerSecond)
	v.Set("search.min_query_length", cfg.Search.MinQueryLength)
	v.Set("search.rank_results", cfg.Search.RankResults)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("ui.show_summary", cfg.UI.ShowSummary)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// HasAPIKey reports whether an OMDb key is configured.
// A missing key is not fatal: every lookup just fails.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.OMDb.APIKey) != ""
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
