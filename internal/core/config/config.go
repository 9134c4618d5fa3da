// Package config handles configuration loading and validation for tasklist.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/tasklist/internal/core/task"
	"github.com/colonyops/tasklist/internal/core/theme"
)

// Backend selects where task and theme state is stored.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// IsValid reports whether b is a supported backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	default:
		return false
	}
}

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Theme    ThemeConfig    `yaml:"theme"`
	Keys     KeysConfig     `yaml:"keys"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects the KV backend.
type StorageConfig struct {
	Backend Backend `yaml:"backend"`
	File    string  `yaml:"file"` // path for the file backend; relative paths resolve against the data dir
}

// DatabaseConfig holds SQLite connection pool settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// ThemeConfig holds theme settings.
type ThemeConfig struct {
	Default theme.Name `yaml:"default"` // used until a theme is selected
}

// KeysConfig names the storage keys.
type KeysConfig struct {
	Tasks string `yaml:"tasks"`
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			File:    "tasks.json",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		Theme: ThemeConfig{
			Default: theme.Light,
		},
		Keys: KeysConfig{
			Tasks: task.DefaultKey,
			Theme: theme.DefaultKey,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.File == "" {
		c.Storage.File = defaults.Storage.File
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Theme.Default == "" {
		c.Theme.Default = defaults.Theme.Default
	}
	if c.Keys.Tasks == "" {
		c.Keys.Tasks = defaults.Keys.Tasks
	}
	if c.Keys.Theme == "" {
		c.Keys.Theme = defaults.Keys.Theme
	}
}

// StorageFile returns the absolute path used by the file backend.
func (c *Config) StorageFile() string {
	if filepath.IsAbs(c.Storage.File) {
		return c.Storage.File
	}
	return filepath.Join(c.DataDir, c.Storage.File)
}
