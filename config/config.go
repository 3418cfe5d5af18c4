// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Entity     EntityConfig     `yaml:"entity"`
	Population PopulationConfig `yaml:"population"`
	Countdown  CountdownConfig  `yaml:"countdown"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Audio      AudioConfig      `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the simulation arena dimensions.
type ArenaConfig struct {
	Width  int `yaml:"width"`  // Arena width in pixels (0 = use screen width)
	Height int `yaml:"height"` // Arena height in pixels (0 = use screen height)
}

// EntityConfig holds entity creation parameters.
type EntityConfig struct {
	Radius     float64 `yaml:"radius"`      // Half-side of the collision box
	SpeedMin   int     `yaml:"speed_min"`   // Lowest per-axis velocity component
	SpeedMax   int     `yaml:"speed_max"`   // Highest per-axis velocity component
	Jitter     int     `yaml:"jitter"`      // Max spawn offset from the kind's anchor, per axis
	SpriteSize int     `yaml:"sprite_size"` // Drawn size in pixels, independent of Radius
}

// PopulationConfig holds the initial number of entities per kind.
type PopulationConfig struct {
	Rock     int `yaml:"rock"`
	Paper    int `yaml:"paper"`
	Scissors int `yaml:"scissors"`
}

// CountdownConfig controls the pre-match countdown shown by front-ends.
type CountdownConfig struct {
	Seconds int    `yaml:"seconds"`  // Numbers shown before the start, one per second
	GoLabel string `yaml:"go_label"` // Final label, held for one second
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per aggregated stats row
}

// MetricsConfig holds Prometheus exporter settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // Listen address (empty = disabled)
}

// AudioConfig holds conversion sound settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Frequency  float64 `yaml:"frequency"`   // Tone frequency in Hz
	DurationMS int     `yaml:"duration_ms"` // Tone length
	SampleRate int     `yaml:"sample_rate"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ArenaW32 float32 // Effective arena width as float32
	ArenaH32 float32 // Effective arena height as float32
	Radius32 float32 // Entity.Radius as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Arena dimensions default to screen size if not specified
	arenaW := c.Arena.Width
	if arenaW == 0 {
		arenaW = c.Screen.Width
	}
	arenaH := c.Arena.Height
	if arenaH == 0 {
		arenaH = c.Screen.Height
	}
	c.Derived.ArenaW32 = float32(arenaW)
	c.Derived.ArenaH32 = float32(arenaH)
	c.Derived.Radius32 = float32(c.Entity.Radius)
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
