// Package config provides configuration loading and access for the
// foam demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Foam      FoamConfig      `yaml:"foam"`
	Swell     SwellConfig     `yaml:"swell"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the density field resolution.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FoamConfig holds the contour extraction parameters.
type FoamConfig struct {
	Variant           string            `yaml:"variant"`            // basic, expanding, row_spread, age_blur
	BlurPasses        int               `yaml:"blur_passes"`        // smoothing passes (age_blur overrides)
	ClosedLoops       bool              `yaml:"closed_loops"`       // polygons instead of independent segments
	SimplifyTolerance float64           `yaml:"simplify_tolerance"` // loop point reduction, 0 disables
	Thresholds        []ThresholdConfig `yaml:"thresholds"`
}

// ThresholdConfig holds one contour ring level and its stroke style.
type ThresholdConfig struct {
	Value float64 `yaml:"value"`
	Color []uint8 `yaml:"color"` // r, g, b, a
	Width float64 `yaml:"width"`
}

// SwellConfig holds the wave simulation parameters.
type SwellConfig struct {
	MaxCrests     int     `yaml:"max_crests"`     // concurrent wave crests
	SpawnInterval float64 `yaml:"spawn_interval"` // seconds between crest spawns
	MinSpeed      float64 `yaml:"min_speed"`      // crest travel, px/s
	MaxSpeed      float64 `yaml:"max_speed"`
	BreakYMin     float64 `yaml:"break_y_min"` // break line band, fraction of screen height
	BreakYMax     float64 `yaml:"break_y_max"`
	BandDecay     float64 `yaml:"band_decay"` // opacity lost per second
	MaxBands      int     `yaml:"max_bands"`  // oldest bands culled beyond this
	NoiseScale    float64 `yaml:"noise_scale"`
	NoiseCutoff   float64 `yaml:"noise_cutoff"` // noise above this opens a segment
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per aggregation window
	PerfWindow  int     `yaml:"perf_window"`  // frames in the rolling perf average
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	GridCells int     // Grid.Width * Grid.Height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields
		// present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.GridCells = c.Grid.Width * c.Grid.Height
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
