// Package config defines the safekeep configuration, loaded through viper
// from a YAML file and SAFEKEEP_* environment variables. One Config value is
// assembled at process start and threaded through explicitly; nothing reads
// settings ambiently after startup.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// StoreDirName is the dot-directory under the user's home that holds
// unsaved-document snapshots. Fixed: outside tools recover files from it.
const StoreDirName = ".safekeep-unsaved"

// Config represents the complete safekeep configuration
type Config struct {
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AutosaveConfig controls the per-document snapshot schedule
type AutosaveConfig struct {
	// Enabled toggles the whole feature. When false, document watchers
	// never start and the process performs zero snapshot writes.
	Enabled bool `mapstructure:"enabled"`
	// IntervalMinutes is the autosave tick interval in minutes (minimum 1).
	// Stored in minutes to match the host editor's auto-save setting.
	IntervalMinutes uint `mapstructure:"interval_minutes"`
}

// Interval returns the autosave interval as a time.Duration.
func (c *AutosaveConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// StoreConfig controls the on-disk session store
type StoreConfig struct {
	// Root is the store root directory. Empty means the default
	// dot-directory under the user's home.
	Root string `mapstructure:"root"`
	// RetentionDays is the maximum age of a past session directory before
	// the startup sweep removes it (default: 28).
	RetentionDays uint `mapstructure:"retention_days"`
}

// Retention returns the retention threshold as a time.Duration.
func (c *StoreConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// ResolveRoot returns the effective store root, falling back to the default
// dot-directory under the user's home when unset.
func (c *StoreConfig) ResolveRoot() string {
	if c.Root != "" {
		return c.Root
	}
	return DefaultStoreRoot()
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	// Level is the minimum level written: debug, info, warn, or error.
	Level string `mapstructure:"level"`
	// Dir is where debug.log is written. Empty logs to stderr.
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with all default values
func Default() *Config {
	return &Config{
		Autosave: AutosaveConfig{
			Enabled:         true,
			IntervalMinutes: 10,
		},
		Store: StoreConfig{
			Root:          "",
			RetentionDays: 28,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
	}
}

// Disabled returns the defaults with autosave switched off. Used as the
// fallback when the configuration cannot be read: an unreadable config
// degrades to "feature disabled", never to a crash.
func Disabled() *Config {
	cfg := Default()
	cfg.Autosave.Enabled = false
	return cfg
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("autosave.enabled", defaults.Autosave.Enabled)
	viper.SetDefault("autosave.interval_minutes", defaults.Autosave.IntervalMinutes)

	viper.SetDefault("store.root", defaults.Store.Root)
	viper.SetDefault("store.retention_days", defaults.Store.RetentionDays)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration. If loading fails the feature-off
// fallback is returned, so a broken config file can never break the host.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Disabled()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "safekeep")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".safekeep"
	}
	return filepath.Join(home, ".config", "safekeep")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultStoreRoot returns the default store root: a fixed dot-directory
// under the user's home.
func DefaultStoreRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return StoreDirName
	}
	return filepath.Join(home, StoreDirName)
}
