package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Width != 200 || config.Height != 100 {
		t.Errorf("expected 200x100, got %dx%d", config.Width, config.Height)
	}
	if config.FrameRate != 100*time.Millisecond {
		t.Errorf("expected FrameRate 100ms, got %v", config.FrameRate)
	}
	if config.Density != 0.2 {
		t.Errorf("expected Density 0.2, got %f", config.Density)
	}
	if !config.ShowBirthDeath {
		t.Error("expected ShowBirthDeath to be true by default")
	}
	if config.LogLevel != "info" {
		t.Errorf("expected LogLevel 'info', got '%s'", config.LogLevel)
	}
	if err := config.Validate(nil); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "golife.yaml")

	configContent := `
width: 64
height: 32
frame_rate: 250ms
density: 0.5
seed: 12
workers: 2
show_birth_death: false
pattern: glider
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Width != 64 || config.Height != 32 {
		t.Errorf("expected 64x32, got %dx%d", config.Width, config.Height)
	}
	if config.FrameRate != 250*time.Millisecond {
		t.Errorf("expected FrameRate 250ms, got %v", config.FrameRate)
	}
	if config.Density != 0.5 || config.Seed != 12 || config.Workers != 2 {
		t.Errorf("unexpected density/seed/workers: %f/%d/%d", config.Density, config.Seed, config.Workers)
	}
	if config.ShowBirthDeath {
		t.Error("expected ShowBirthDeath false")
	}
	if config.Pattern != "glider" || config.LogLevel != "debug" {
		t.Errorf("unexpected pattern/log level: %s/%s", config.Pattern, config.LogLevel)
	}

	// Unset keys keep their defaults
	if config.MaxCells != DefaultConfig().MaxCells {
		t.Errorf("expected default MaxCells, got %d", config.MaxCells)
	}
	if !config.UseMemoryPool {
		t.Error("expected default UseMemoryPool true")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "golife.yaml")
	if err := os.WriteFile(configPath, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "[LoadConfig] failed to unmarshal") {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	known := func(name string) bool { return name == "glider" }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero width", func(c *Config) { c.Width = 0 }, "width and height"},
		{"negative height", func(c *Config) { c.Height = -1 }, "width and height"},
		{"density above one", func(c *Config) { c.Density = 1.5 }, "density"},
		{"negative density", func(c *Config) { c.Density = -0.1 }, "density"},
		{"negative frame rate", func(c *Config) { c.FrameRate = -time.Second }, "frame_rate"},
		{"negative workers", func(c *Config) { c.Workers = -2 }, "workers"},
		{"negative threshold", func(c *Config) { c.StagnationThreshold = -1 }, "stagnation_threshold"},
		{"negative max generations", func(c *Config) { c.MaxGenerations = -1 }, "max_generations"},
		{"negative max cells", func(c *Config) { c.MaxCells = -1 }, "max_cells"},
		{"known pattern", func(c *Config) { c.Pattern = "glider" }, ""},
		{"unknown pattern", func(c *Config) { c.Pattern = "gosper" }, "unknown pattern"},
		{"empty log level", func(c *Config) { c.LogLevel = "" }, ""},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			err := config.Validate(known)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
