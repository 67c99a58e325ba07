// Package config loads the ivm YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vic/ivm/pkg/lang"
	"github.com/vic/ivm/pkg/render"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	// Arena is the number of agent slots of each net.
	Arena int    `yaml:"arena" validate:"gte=16"`
	Entry string `yaml:"entry" validate:"required"`
	// Books are extra definition files, loaded after the prelude.
	Books    []string      `yaml:"books" validate:"dive,required"`
	Prelude  bool          `yaml:"prelude"`
	Numerals lang.Numerals `yaml:"numerals"`
	Log      Log           `yaml:"log"`
	Metrics  Metrics       `yaml:"metrics"`
	Tracing  Tracing       `yaml:"tracing"`
	Render   render.Options `yaml:"render"`
	// Trace records the first TraceSize rewrites of every run.
	Trace     bool `yaml:"trace"`
	TraceSize int  `yaml:"trace_size" validate:"gte=0"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=auto text json"`
}

type Metrics struct {
	// Addr serves /metrics when set, e.g. ":9090".
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

type Tracing struct {
	// Exporter is "none" or "stdout".
	Exporter string `yaml:"exporter" validate:"oneof=none stdout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Arena:     1 << 20,
		Entry:     "ex0",
		Prelude:   true,
		Numerals:  lang.DefaultNumerals,
		Log:       Log{Level: "info", Format: "auto"},
		Tracing:   Tracing{Exporter: "none"},
		Render:    render.DefaultOptions,
		TraceSize: 1024,
	}
}

var validate = validator.New()

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Numerals.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
