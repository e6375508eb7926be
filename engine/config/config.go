// Package config loads the rig demo configuration: controller tuning, loop rates, window
// settings and the tick trace. Embedded defaults are overlaid by an optional YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the rig demo.
type Config struct {
	Rig    rig.Config   `yaml:"rig"`
	Engine EngineConfig `yaml:"engine"`
	Window WindowConfig `yaml:"window"`
	Trace  TraceConfig  `yaml:"trace"`
}

// EngineConfig holds loop settings.
type EngineConfig struct {
	TickRate   int  `yaml:"tick_rate"`   // fixed ticks per second
	FrameLimit int  `yaml:"frame_limit"` // frames per second, 0 for unlimited
	Profiling  bool `yaml:"profiling"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// TraceConfig controls the per-tick CSV trace.
type TraceConfig struct {
	Path      string `yaml:"path"` // empty disables tracing
	BatchSize int    `yaml:"batch_size"`
}

// Default returns the embedded defaults. Panics if the embedded document is malformed.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults, and validates it.
// If path is empty, only embedded defaults are used.
//
// Parameters:
//   - path: the user configuration file, or empty
//
// Returns:
//   - *Config: the merged configuration
//   - error: a read, parse or validation error
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the rig section and the loop, window and trace settings.
//
// Returns:
//   - error: every problem found, joined, or nil
func (c *Config) Validate() error {
	var errs []error
	if err := c.Rig.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rig: %w", err))
	}
	if c.Engine.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("engine.tick_rate must be positive, got %d", c.Engine.TickRate))
	}
	if c.Engine.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("engine.frame_limit must not be negative, got %d", c.Engine.FrameLimit))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Trace.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("trace.batch_size must be positive, got %d", c.Trace.BatchSize))
	}
	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
