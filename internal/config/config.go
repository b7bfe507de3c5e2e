// Application configuration with YAML file support
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when no config file exists or a value is out of range.
const (
	DefaultMaxDimension  = 1200
	DefaultStride        = 12
	DefaultLowThreshold  = 80
	DefaultHighThreshold = 160

	MinStride        = 1
	MaxStride        = 30
	MaxLowThreshold  = 300
	MaxHighThreshold = 400
)

// Config holds the user-tunable application settings.
type Config struct {
	// MaxDimension bounds the largest side of a working image in pixels.
	MaxDimension int `yaml:"max_dimension"`

	// Default detection parameters applied at startup and on reset.
	Stride        int     `yaml:"stride"`
	LowThreshold  float64 `yaml:"low_threshold"`
	HighThreshold float64 `yaml:"high_threshold"`

	// Debug enables verbose logging and the memory monitor.
	Debug bool `yaml:"debug"`

	// LogJSON selects the JSON log formatter (text when false).
	LogJSON bool `yaml:"log_json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxDimension:  DefaultMaxDimension,
		Stride:        DefaultStride,
		LowThreshold:  DefaultLowThreshold,
		HighThreshold: DefaultHighThreshold,
		Debug:         false,
		LogJSON:       true,
	}
}

// Load reads the configuration from a YAML file. A missing file is not an
// error: defaults are returned. A malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// Normalize clamps every field to its legal range, falling back to the
// defaults for non-positive dimensions.
func (c *Config) Normalize() {
	if c.MaxDimension <= 0 {
		c.MaxDimension = DefaultMaxDimension
	}
	if c.Stride < MinStride {
		c.Stride = MinStride
	}
	if c.Stride > MaxStride {
		c.Stride = MaxStride
	}
	if c.LowThreshold < 0 {
		c.LowThreshold = 0
	}
	if c.LowThreshold > MaxLowThreshold {
		c.LowThreshold = MaxLowThreshold
	}
	if c.HighThreshold < 0 {
		c.HighThreshold = 0
	}
	if c.HighThreshold > MaxHighThreshold {
		c.HighThreshold = MaxHighThreshold
	}
}
