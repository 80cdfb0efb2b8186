package speed

import (
	"errors"
	"fmt"
	"math"
)

// Config holds the tunable constants of a Controller. The classic and dial
// layouts differ only in these values.
type Config struct {
	MinSpeed         float64 `yaml:"min_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	Smoothing        float64 `yaml:"smoothing"`         // Fraction of the remaining gap closed per tick
	KeyStep          float64 `yaml:"key_step"`          // Target change per arrow / W / S press
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // Drag scale for mouse drags
	TouchSensitivity float64 `yaml:"touch_sensitivity"` // Drag scale for touch drags
	WheelStep        float64 `yaml:"wheel_step"`        // Target change per wheel notch
	CruiseSpeed      float64 `yaml:"cruise_speed"`      // Target engaged by the cruise toggle
	CruiseThreshold  float64 `yaml:"cruise_threshold"`  // Below this current speed the toggle engages
}

// Classic returns the bar gauge layout constants.
func Classic() Config {
	return Config{
		MinSpeed:         0,
		MaxSpeed:         50,
		Smoothing:        0.05,
		KeyStep:          2,
		MouseSensitivity: 1.5,
		TouchSensitivity: 2.0,
		WheelStep:        2,
		CruiseSpeed:      25,
		CruiseThreshold:  1,
	}
}

// Dial returns the rotary dial layout constants.
func Dial() Config {
	return Config{
		MinSpeed:         0,
		MaxSpeed:         50,
		Smoothing:        0.1,
		KeyStep:          5,
		MouseSensitivity: 1.0,
		TouchSensitivity: 1.5,
		WheelStep:        2,
		CruiseSpeed:      25,
		CruiseThreshold:  1,
	}
}

// SpeedCeiling bounds max_speed so one tick never moves a star absurdly far.
const SpeedCeiling = 1000

var errNegativeMin = errors.New("min_speed must not be negative")

// Validate reports constants that would break the controller invariants.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"min_speed", c.MinSpeed},
		{"max_speed", c.MaxSpeed},
		{"smoothing", c.Smoothing},
		{"key_step", c.KeyStep},
		{"mouse_sensitivity", c.MouseSensitivity},
		{"touch_sensitivity", c.TouchSensitivity},
		{"wheel_step", c.WheelStep},
		{"cruise_speed", c.CruiseSpeed},
		{"cruise_threshold", c.CruiseThreshold},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.v)
		}
	}
	if c.MinSpeed < 0 {
		return errNegativeMin
	}
	if c.MaxSpeed <= c.MinSpeed {
		return fmt.Errorf("max_speed %.2f must exceed min_speed %.2f", c.MaxSpeed, c.MinSpeed)
	}
	if c.MaxSpeed > SpeedCeiling {
		return fmt.Errorf("max_speed %.2f exceeds %d", c.MaxSpeed, SpeedCeiling)
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return fmt.Errorf("smoothing %.3f must be in (0, 1]", c.Smoothing)
	}
	if c.CruiseSpeed < c.MinSpeed || c.CruiseSpeed > c.MaxSpeed {
		return fmt.Errorf("cruise_speed %.2f outside [%.2f, %.2f]", c.CruiseSpeed, c.MinSpeed, c.MaxSpeed)
	}
	return nil
}

// clamp pins v to [MinSpeed, MaxSpeed]. NaN maps to MinSpeed.
func (c Config) clamp(v float64) float64 {
	if math.IsNaN(v) || v < c.MinSpeed {
		return c.MinSpeed
	}
	if v > c.MaxSpeed {
		return c.MaxSpeed
	}
	return v
}
