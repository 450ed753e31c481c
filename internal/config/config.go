// Package config defines all configuration structures for the TaxonomyViewing
// service.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DataConfig holds the static dataset location and reload behaviour.
type DataConfig struct {
	// Dir is the directory containing the taxonomy JSON files
	// (hs-tree.json, hs-lookup.json, concordance.json, ...).
	Dir string `mapstructure:"dir"`

	// Watch enables fsnotify-based snapshot reloads when dataset files
	// change on disk.
	Watch bool `mapstructure:"watch"`

	// WatchDebounce coalesces bursts of file events into one reload.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// BuilderConfig holds the builder library store settings.
type BuilderConfig struct {
	// SQLitePath is the sqlite database file for authored trees.
	// ":memory:" is accepted for ephemeral use.
	SQLitePath string `mapstructure:"sqlite_path"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// MetricsConfig holds Prometheus exposure settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config is the root configuration structure for the service.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Data    DataConfig    `mapstructure:"data"`
	Builder BuilderConfig `mapstructure:"builder"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Data.Dir == "" {
		return fmt.Errorf("config: data.dir is required")
	}
	if c.Data.Watch && c.Data.WatchDebounce <= 0 {
		return fmt.Errorf("config: data.watch_debounce must be > 0 when data.watch is enabled")
	}

	if c.Builder.SQLitePath == "" {
		return fmt.Errorf("config: builder.sqlite_path is required")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics.enabled is true")
	}

	return nil
}
