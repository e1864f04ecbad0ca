// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the configuration file when no --config
// flag is given.
const EnvironmentVariable = "TAGWIRE_CONFIG"

// Input formats for encoded streams.
const (
	FormatBinary = "binary"
	FormatHex    = "hex"
	FormatBase64 = "base64"
)

// Colour modes for JSON output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the tagwire CLI configuration.
type Config struct {
	// Input configures how encoded streams are read.
	Input InputConfig `yaml:"input"`

	// Output configures JSON rendering.
	Output OutputConfig `yaml:"output"`

	// Buffer configures the encoding buffer.
	Buffer BufferConfig `yaml:"buffer"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// InputConfig configures how encoded streams are read.
type InputConfig struct {
	// Format is the transport form of encoded input: binary, hex, or
	// base64. Default: binary
	Format string `yaml:"format"`
}

// OutputConfig configures JSON rendering.
type OutputConfig struct {
	// Compact selects single-line JSON. Default: false
	Compact bool `yaml:"compact"`

	// Color selects syntax highlighting: auto (when stdout is a
	// terminal), always, or never. Default: auto
	Color string `yaml:"color"`
}

// BufferConfig configures the encoding buffer.
type BufferConfig struct {
	// InitialCapacity is the starting size of the encode buffer in
	// bytes. Default: 64
	InitialCapacity int `yaml:"initial_capacity"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is the minimum slog level: debug, info, warn, or error.
	// Default: warn
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Input:  InputConfig{Format: FormatBinary},
		Output: OutputConfig{Color: ColorAuto},
		Buffer: BufferConfig{InitialCapacity: 64},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load loads configuration from the file named by TAGWIRE_CONFIG.
// It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your tagwire.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path over the defaults and
// validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	formats := []string{FormatBinary, FormatHex, FormatBase64}
	if !slices.Contains(formats, c.Input.Format) {
		errs = append(errs, fmt.Errorf("input.format must be one of: %v", formats))
	}

	colors := []string{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colors, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colors))
	}

	if c.Buffer.InitialCapacity <= 0 {
		errs = append(errs, fmt.Errorf("buffer.initial_capacity must be positive, got %d", c.Buffer.InitialCapacity))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
