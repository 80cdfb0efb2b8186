package game

import (
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/warpfield/internal/config"
)

const gaugePadding = 8

// Gauge is the speed readout widget: a numeric value, a row of bars and a
// spring-animated marker.
type Gauge struct {
	cfg    config.GaugeConfig
	rect   image.Rectangle
	spring harmonica.Spring

	readout    string
	fraction   float64
	activeBars int
	markerPos  float64
	markerVel  float64
}

// NewGauge creates a gauge animated at tps ticks per second.
func NewGauge(cfg config.GaugeConfig, tps int) *Gauge {
	return &Gauge{
		cfg:     cfg,
		spring:  harmonica.NewSpring(harmonica.FPS(tps), cfg.SpringFrequency, cfg.SpringDamping),
		readout: formatSpeed(0),
	}
}

// Resize anchors the gauge to the bottom right of the viewport.
func (g *Gauge) Resize(width, height int) {
	x0 := width - g.cfg.X
	y0 := height - g.cfg.Y
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	g.rect = image.Rect(x0, y0, x0+g.cfg.Width, y0+g.cfg.Height)
}

// Rect returns the gauge bounds in screen pixels.
func (g *Gauge) Rect() image.Rectangle { return g.rect }

// Contains reports whether a pointer at (x, y) hits the gauge.
func (g *Gauge) Contains(x, y int) bool {
	return image.Pt(x, y).In(g.rect)
}

// Update feeds the smoothed speed into the widget state.
func (g *Gauge) Update(current, fraction float64) {
	g.readout = formatSpeed(current)
	g.fraction = fraction
	g.activeBars = activeBars(fraction, g.cfg.Bars)
	g.markerPos, g.markerVel = g.spring.Update(g.markerPos, g.markerVel, clamp01(fraction))
}

// Readout returns the numeric display text.
func (g *Gauge) Readout() string { return g.readout }

// ActiveBars returns how many bars are lit.
func (g *Gauge) ActiveBars() int { return g.activeBars }

// Marker returns the animated marker position in [0, 1] (may briefly exceed it while springing).
func (g *Gauge) Marker() float64 { return g.markerPos }

func activeBars(fraction float64, bars int) int {
	n := int(math.Floor(fraction * float64(bars)))
	if n < 0 {
		return 0
	}
	if n > bars {
		return bars
	}
	return n
}

func (g *Gauge) Draw(dst *ebiten.Image) {
	intensity := clamp01(math.Abs(g.fraction))
	x := float32(g.rect.Min.X)
	y := float32(g.rect.Min.Y)
	w := float32(g.rect.Dx())
	h := float32(g.rect.Dy())

	// Panel and glow
	glow := float32(10 + intensity*30)
	vector.DrawFilledRect(dst, x, y, w, h, color.RGBA{R: 4, G: 12, B: 18, A: 200}, false)
	vector.StrokeRect(dst, x-glow/4, y-glow/4, w+glow/2, h+glow/2, glow/2,
		accentColor(intensity, uint8(255*(0.1+intensity*0.2))), true)
	vector.StrokeRect(dst, x, y, w, h, 2, accentColor(intensity, uint8(255*(0.2+intensity*0.3))), true)

	ebitenutil.DebugPrintAt(dst, g.readout, g.rect.Min.X+gaugePadding, g.rect.Min.Y+gaugePadding)

	// Bars
	barsTop := y + 28
	barsH := h - 28 - gaugePadding
	innerW := w - 2*gaugePadding
	slot := innerW / float32(g.cfg.Bars)
	for i := 0; i < g.cfg.Bars; i++ {
		bh := barsH * 0.3
		clr := color.RGBA{R: 20, G: 50, B: 60, A: 255}
		if i < g.activeBars {
			bh = barsH
			clr = accentColor(intensity, 255)
		}
		bx := x + gaugePadding + float32(i)*slot
		vector.DrawFilledRect(dst, bx, barsTop+barsH-bh, slot-2, bh, clr, false)
	}

	// Marker
	mx := x + gaugePadding + float32(clamp01(g.markerPos))*innerW
	vector.StrokeLine(dst, mx, barsTop-4, mx, barsTop+barsH+2, 2, color.White, true)
}

// DrawScope traces the engine hum just above the gauge.
func (g *Gauge) DrawScope(dst *ebiten.Image, samples []float64) {
	if len(samples) < 2 {
		return
	}
	const height = 24
	x := float32(g.rect.Min.X)
	mid := float32(g.rect.Min.Y) - height/2 - 4
	step := float32(g.rect.Dx()) / float32(len(samples)-1)
	clr := accentColor(clamp01(g.fraction), 180)
	for i := 1; i < len(samples); i++ {
		y0 := mid - float32(samples[i-1])*height
		y1 := mid - float32(samples[i])*height
		vector.StrokeLine(dst, x+float32(i-1)*step, y0, x+float32(i)*step, y1, 1, clr, true)
	}
}
