// Package config handles importer configuration loading.
package config

import (
	"errors"
	"fmt"
	"runtime"
)

// Config holds all importer settings.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoaderConfig holds scene loading settings.
type LoaderConfig struct {
	DecodeWorkers  int   `yaml:"decode_workers"`   // parallel image decoders, 1 = sequential
	MaxBufferBytes int64 `yaml:"max_buffer_bytes"` // 0 = unlimited
	LoadImages     bool  `yaml:"load_images"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			DecodeWorkers: runtime.NumCPU(),
			LoadImages:    true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Loader.DecodeWorkers < 1 {
		errs = append(errs, fmt.Errorf("loader.decode_workers must be at least 1, got %d", c.Loader.DecodeWorkers))
	}
	if c.Loader.MaxBufferBytes < 0 {
		errs = append(errs, fmt.Errorf("loader.max_buffer_bytes must not be negative, got %d", c.Loader.MaxBufferBytes))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	return errors.Join(errs...)
}
