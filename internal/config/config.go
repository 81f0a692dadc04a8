// Package config loads tool configuration from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file the tool looks for.
const FileName = "minijavac.toml"

// Config represents the toolchain configuration.
type Config struct {
	// Execution settings
	Execution struct {
		MaxSteps    int  `toml:"max_steps"`
		EnableTrace bool `toml:"enable_trace"`
	} `toml:"execution"`

	// Display settings
	Display struct {
		ColorOutput bool `toml:"color_output"`
	} `toml:"display"`

	// Output settings
	Output struct {
		ObjExtension string `toml:"obj_extension"`
	} `toml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxSteps = 10_000_000
	cfg.Execution.EnableTrace = false

	cfg.Display.ColorOutput = true

	cfg.Output.ObjExtension = ".obj"

	return cfg
}

// LoadFromFile reads a configuration file, applying defaults for any
// fields the file omits.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Load looks for FileName next to sourcePath and then in the working
// directory, returning defaults when no file exists.
func Load(sourcePath string) (*Config, error) {
	candidates := []string{}
	if sourcePath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(sourcePath), FileName))
	}
	candidates = append(candidates, FileName)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return LoadFromFile(path)
		}
	}
	return DefaultConfig(), nil
}

// validate rejects settings the toolchain cannot honor.
func (c *Config) validate() error {
	if c.Execution.MaxSteps < 0 {
		return fmt.Errorf("execution.max_steps must not be negative, got %d", c.Execution.MaxSteps)
	}
	if c.Output.ObjExtension != "" && c.Output.ObjExtension[0] != '.' {
		return fmt.Errorf("output.obj_extension must start with '.', got %q", c.Output.ObjExtension)
	}
	return nil
}
