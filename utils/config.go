package utils

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the game
type Config struct {
	Width               int           `yaml:"width"`
	Height              int           `yaml:"height"`
	FrameRate           time.Duration `yaml:"frame_rate"`
	Density             float64       `yaml:"density"`
	Seed                int64         `yaml:"seed"`
	Workers             int           `yaml:"workers"`
	ShowBirthDeath      bool          `yaml:"show_birth_death"`
	AutoRestart         bool          `yaml:"auto_restart"`
	StagnationThreshold int           `yaml:"stagnation_threshold"`
	MaxGenerations      int           `yaml:"max_generations"`
	UseMemoryPool       bool          `yaml:"use_memory_pool"`
	MaxCells            int           `yaml:"max_cells"`
	Pattern             string        `yaml:"pattern"`
	LogLevel            string        `yaml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               200,
		Height:              100,
		FrameRate:           100 * time.Millisecond,
		Density:             0.2,
		Workers:             0, // one per CPU
		ShowBirthDeath:      true,
		AutoRestart:         false,
		StagnationThreshold: 5,
		MaxGenerations:      0,
		UseMemoryPool:       true,
		MaxCells:            1 << 26,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks that the configuration can drive a world. knownPattern
// reports whether a pattern name exists.
func (c Config) Validate(knownPattern func(string) bool) error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Density < 0 || c.Density > 1 {
		return errors.Errorf("density must be between 0 and 1, got %f", c.Density)
	}
	if c.FrameRate < 0 {
		return errors.Errorf("frame_rate must be non-negative, got %v", c.FrameRate)
	}
	if c.Workers < 0 {
		return errors.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.StagnationThreshold < 0 {
		return errors.Errorf("stagnation_threshold must be non-negative, got %d", c.StagnationThreshold)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("max_generations must be non-negative, got %d", c.MaxGenerations)
	}
	if c.MaxCells < 0 {
		return errors.Errorf("max_cells must be non-negative, got %d", c.MaxCells)
	}
	if c.Pattern != "" && knownPattern != nil && !knownPattern(c.Pattern) {
		return errors.Errorf("unknown pattern: %s", c.Pattern)
	}
	if !ValidLevel(c.LogLevel) {
		return errors.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.LogLevel)
	}
	return nil
}
