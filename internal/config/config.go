// Package config loads the YAML settings used by the etinfo command.
//
// Example:
//
//	compression: zstd
//	strict: false
//	delta: true
//	workers: 8
//	log:
//	  level: debug
//	  json: false
//
// Environment variables are expanded before parsing, so values such as
// ${ET_WORKERS} are accepted.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/ArthurRichard/energytrace"
	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

const (
	// DefaultCompression is the codec used to hold channels in memory.
	DefaultCompression = "lz4"

	// DefaultLogLevel is the slog level name used when none is configured.
	DefaultLogLevel = "info"
)

// Config is the on-disk configuration.
type Config struct {
	Compression string    `yaml:"compression"`
	Strict      bool      `yaml:"strict"`
	Delta       bool      `yaml:"delta"`
	Workers     int       `yaml:"workers"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Compression: DefaultCompression,
		Workers:     runtime.GOMAXPROCS(0),
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if _, ok := format.ParseCompression(c.Compression); !ok {
		return errs.Formatf("compression: unknown algorithm %q", c.Compression)
	}
	if c.Workers < 1 {
		return errs.Formatf("workers: must be at least 1, got %d", c.Workers)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return errs.Formatf("log.level: %q is not a slog level", c.Log.Level)
	}

	return nil
}

// Options converts the configuration into Open options.
// The configuration must be valid.
func (c *Config) Options() []energytrace.Option {
	ct, _ := format.ParseCompression(c.Compression)

	opts := []energytrace.Option{
		energytrace.WithCompression(ct),
		energytrace.WithWorkers(c.Workers),
	}
	if c.Strict {
		opts = append(opts, energytrace.WithStrict())
	}
	if c.Delta {
		opts = append(opts, energytrace.WithDeltaEncoding())
	}

	return opts
}
