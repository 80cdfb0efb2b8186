// Package config loads warpfield settings from YAML layered over embedded defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/warpfield/internal/speed"
	"github.com/iburimskiy/warpfield/internal/starfield"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all warpfield settings.
type Config struct {
	Window    WindowConfig     `yaml:"window"`
	Field     starfield.Config `yaml:"field"`
	Camera    CameraConfig     `yaml:"camera"`
	Speed     SpeedConfig      `yaml:"speed"`
	Gauge     GaugeConfig      `yaml:"gauge"`
	Hints     HintsConfig      `yaml:"hints"`
	Audio     AudioConfig      `yaml:"audio"`
	Telemetry TelemetryConfig  `yaml:"telemetry"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"` // Simulation ticks per second
}

// CameraConfig describes the perspective projection.
type CameraConfig struct {
	FOV  float64 `yaml:"fov"` // Vertical field of view in degrees
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// SpeedConfig selects one of the named controller presets.
type SpeedConfig struct {
	Preset  string                  `yaml:"preset"`
	Presets map[string]speed.Config `yaml:"presets"`
}

// GaugeConfig holds the speed gauge widget layout.
type GaugeConfig struct {
	Bars            int     `yaml:"bars"`
	X               int     `yaml:"x"`                // Offset from the right edge
	Y               int     `yaml:"y"`                // Offset from the bottom edge
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	SpringFrequency float64 `yaml:"spring_frequency"` // Marker spring angular frequency
	SpringDamping   float64 `yaml:"spring_damping"`
	TapSlop         float64 `yaml:"tap_slop"`         // Max pointer travel in pixels still counted as a tap
}

// HintsConfig controls the usage hint overlay.
type HintsConfig struct {
	Delay time.Duration `yaml:"delay"` // Hide hints this long after the first input
}

// AudioConfig controls the engine hum.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	BaseFreq   float64 `yaml:"base_freq"` // Hz at rest
	PeakFreq   float64 `yaml:"peak_freq"` // Hz at max speed
	Volume     float64 `yaml:"volume"`    // beep effects.Volume exponent, base 2
}

// TelemetryConfig holds CSV output settings.
type TelemetryConfig struct {
	OutputDir      string `yaml:"output_dir"` // Empty disables output
	SampleInterval int    `yaml:"sample_interval"`
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Fields absent from the file keep their default values
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window tps %d must be positive", c.Window.TPS)
	}
	if c.Field.Extent <= 0 {
		return fmt.Errorf("field extent %.1f must be positive", c.Field.Extent)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov %.1f must be in (0, 180)", c.Camera.FOV)
	}
	if c.Gauge.Bars <= 0 {
		return fmt.Errorf("gauge bars %d must be positive", c.Gauge.Bars)
	}
	for name, p := range c.Speed.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("speed preset %q: %w", name, err)
		}
	}
	if _, err := c.ActiveSpeed(); err != nil {
		return err
	}
	return nil
}

// ActiveSpeed returns the controller constants of the selected preset.
func (c *Config) ActiveSpeed() (speed.Config, error) {
	p, ok := c.Speed.Presets[c.Speed.Preset]
	if !ok {
		return speed.Config{}, fmt.Errorf("unknown speed preset %q (have %v)", c.Speed.Preset, c.PresetNames())
	}
	return p, nil
}

// PresetNames returns the preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Speed.Presets))
	for name := range c.Speed.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPreset reads a standalone speed preset file as picked from the preset dialog.
// Fields absent from the file fall back to base.
func LoadPreset(path string, base speed.Config) (speed.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return speed.Config{}, fmt.Errorf("reading preset file: %w", err)
	}
	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return speed.Config{}, fmt.Errorf("parsing preset file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return speed.Config{}, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
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
