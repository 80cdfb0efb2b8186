package game

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// accentColor returns the gauge tint: cyan at rest shifting toward blue with intensity.
func accentColor(intensity float64, alpha uint8) color.RGBA {
	c := colorful.Hsl(180+clamp01(intensity)*40, 1, 0.5).Clamped()
	a := float64(alpha) / 255
	// color.RGBA is alpha premultiplied
	return color.RGBA{
		R: uint8(c.R * a * 255),
		G: uint8(c.G * a * 255),
		B: uint8(c.B * a * 255),
		A: alpha,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatSpeed formats the readout with one decimal.
func formatSpeed(v float64) string {
	return fmt.Sprintf("%.1f", math.Abs(v))
}
