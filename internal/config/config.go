// Package config loads batch settings for the normalgen tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/image"
)

// Strength bounds accepted in configuration files.
const (
	MinStrength = 0.1
	MaxStrength = 10.0
)

// Environment variables that override file values.
const (
	EnvStrength = "NORMALMAP_STRENGTH"
	EnvFlip     = "NORMALMAP_FLIP"
	EnvLogLevel = "NORMALMAP_LOG_LEVEL"
)

var (
	// ErrInvalidConfig is returned by Validate for out-of-range or unknown values.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrNoCategories is returned when the material allow-list is empty.
	ErrNoCategories = errors.New("config: no material types selected")
)

// Config represents the tool configuration
type Config struct {
	Strength    float64       `yaml:"strength"`
	Flip        bool          `yaml:"flip"`
	Convention  string        `yaml:"convention"`
	Categories  []string      `yaml:"categories"`
	Workers     int           `yaml:"workers"`
	Concurrency int           `yaml:"concurrency"`
	Output      OutputConfig  `yaml:"output"`
	Logging     LoggingConfig `yaml:"logging"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Suffix   string `yaml:"suffix"`
	Format   string `yaml:"format"`
	BitDepth int    `yaml:"bit_depth"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultCategories are the material name fragments processed when no
// allow-list is configured.
var DefaultCategories = []string{"SKIN", "CLOTH", "HAIR"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Strength:    normalmap.DefaultStrength,
		Convention:  normalmap.DirectX.String(),
		Categories:  append([]string(nil), DefaultCategories...),
		Concurrency: 1,
		Output: OutputConfig{
			Suffix:   "_normal",
			Format:   image.FormatPNG.String(),
			BitDepth: 8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a file. Fields absent from the file keep
// their default values. Environment overrides are applied before
// validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from NORMALMAP_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvStrength); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvStrength, v)
		}
		c.Strength = s
	}
	if v := os.Getenv(EnvFlip); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvFlip, v)
		}
		c.Flip = b
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !(c.Strength >= MinStrength && c.Strength <= MaxStrength) {
		return fmt.Errorf("%w: strength %v outside [%v, %v]", ErrInvalidConfig, c.Strength, MinStrength, MaxStrength)
	}
	if _, err := normalmap.ParseConvention(c.Convention); err != nil {
		return fmt.Errorf("%w: convention %q", ErrInvalidConfig, c.Convention)
	}
	if len(c.categories()) == 0 {
		return ErrNoCategories
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidConfig)
	}

	f, err := image.ParseFormat(c.Output.Format)
	if err != nil || !f.CanEncode() {
		return fmt.Errorf("%w: output.format %q", ErrInvalidConfig, c.Output.Format)
	}
	if !f.SupportsBitDepth(c.Output.BitDepth) {
		return fmt.Errorf("%w: output.bit_depth %d not supported by %s", ErrInvalidConfig, c.Output.BitDepth, f)
	}
	if c.Output.Suffix == "" {
		return fmt.Errorf("%w: output.suffix is required", ErrInvalidConfig)
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// categories returns the non-blank allow-list entries.
func (c *Config) categories() []string {
	out := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if cat = strings.TrimSpace(cat); cat != "" {
			out = append(out, cat)
		}
	}
	return out
}

// SelectedCategories returns the allow-list with blank entries removed.
func (c *Config) SelectedCategories() []string {
	return c.categories()
}

// GeneratorOptions returns the normalmap options described by c.
// c must be valid.
func (c *Config) GeneratorOptions() []normalmap.Option {
	conv, _ := normalmap.ParseConvention(c.Convention)
	return []normalmap.Option{
		normalmap.WithStrength(c.Strength),
		normalmap.WithFlip(c.Flip),
		normalmap.WithConvention(conv),
		normalmap.WithWorkers(c.Workers),
	}
}

// EncodeOptions returns the image encoding options for output files.
// c must be valid.
func (c *Config) EncodeOptions() image.EncodeOptions {
	f, _ := image.ParseFormat(c.Output.Format)
	return image.EncodeOptions{Format: f, BitDepth: c.Output.BitDepth}
}

// String renders c as YAML.
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(data)
}
