// Package config loads sceneport settings from TOML files.
//
// Configuration is optional everywhere: Default() is a fully working
// setup, and Load layers file values on top of it. CLI flags override
// both.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sceneforge/sceneport/pkg/errors"
	"github.com/sceneforge/sceneport/pkg/export"
)

// Config holds all sceneport settings.
type Config struct {
	Export ExportConfig `toml:"export"`
	Serve  ServeConfig  `toml:"serve"`
	Log    LogConfig    `toml:"log"`
}

// ExportConfig controls export runs.
type ExportConfig struct {
	// OutputDir is where the file sink writes exported payloads.
	OutputDir string `toml:"output_dir"`
	// DefaultFormat is used when no format is given on the command line.
	DefaultFormat string `toml:"default_format"`
	// WarnSizeMiB is the payload size, in MiB, above which a warning is
	// logged. Advisory only.
	WarnSizeMiB int `toml:"warn_size_mib"`
	// PacingMS inserts a delay, in milliseconds, after each stage
	// transition so interactive UIs can show the sequence.
	PacingMS int `toml:"pacing_ms"`
}

// ServeConfig controls the HTTP export service.
type ServeConfig struct {
	Addr           string `toml:"addr"`
	ReadTimeoutS   int    `toml:"read_timeout_s"`
	WriteTimeoutS  int    `toml:"write_timeout_s"`
	MaxBodySizeMiB int    `toml:"max_body_size_mib"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Export: ExportConfig{
			OutputDir:     ".",
			DefaultFormat: string(export.FormatGLB),
			WarnSizeMiB:   100,
		},
		Serve: ServeConfig{
			Addr:           ":8420",
			ReadTimeoutS:   30,
			WriteTimeoutS:  120,
			MaxBodySizeMiB: 256,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file and layers it over Default. A missing path is not
// an error when optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if err := export.ValidateFormat(c.Export.DefaultFormat); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export.default_format")
	}
	if c.Export.WarnSizeMiB <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "export.warn_size_mib must be positive, got %d", c.Export.WarnSizeMiB)
	}
	if c.Export.PacingMS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "export.pacing_ms must not be negative, got %d", c.Export.PacingMS)
	}
	if c.Serve.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "serve.addr must not be empty")
	}
	if c.Serve.MaxBodySizeMiB <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "serve.max_body_size_mib must be positive, got %d", c.Serve.MaxBodySizeMiB)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// WarnSize returns the warning threshold in bytes.
func (c ExportConfig) WarnSize() int { return c.WarnSizeMiB << 20 }

// Pacing returns the stage pacing as a duration.
func (c ExportConfig) Pacing() time.Duration {
	return time.Duration(c.PacingMS) * time.Millisecond
}

// MaxBodySize returns the request body cap in bytes.
func (c ServeConfig) MaxBodySize() int64 { return int64(c.MaxBodySizeMiB) << 20 }

// ReadTimeout returns the HTTP read timeout as a duration.
func (c ServeConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutS) * time.Second
}

// WriteTimeout returns the HTTP write timeout as a duration.
func (c ServeConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutS) * time.Second
}
