// Package game hosts the warp field in an ebiten window: input, tick loop,
// star rendering and the speed gauge.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/warpfield/internal/audio"
	"github.com/iburimskiy/warpfield/internal/config"
	"github.com/iburimskiy/warpfield/internal/speed"
	"github.com/iburimskiy/warpfield/internal/starfield"
	"github.com/iburimskiy/warpfield/internal/telemetry"
)

// scopeSamples is roughly two cycles of the hum at rest.
const scopeSamples = 1600

// Options configures a Game.
type Options struct {
	Config   *config.Config
	Seed     uint64
	Audio    *audio.Player       // nil disables the hum
	Recorder *telemetry.Recorder // nil disables CSV output
	Logger   *slog.Logger
}

// Game owns all warp state. It implements ebiten.Game.
type Game struct {
	cfg *config.Config
	log *slog.Logger

	// simulation
	field   *starfield.Field
	buffers starfield.Buffers
	ctrl    *speed.Controller
	limiter *Limiter
	tick    int

	// ui
	renderer Renderer
	gauge    *Gauge
	hints    *Hints
	pointer  pointerTracker
	touchIDs []ebiten.TouchID
	width    int
	height   int

	// outputs
	audio   *audio.Player
	scope   []float64
	rec     *telemetry.Recorder
	summary telemetry.Summary

	// state
	start      time.Time
	presetName string
	muted      bool
	lastErr    error
}

// New builds a game at rest with the configured preset.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	preset, err := cfg.ActiveSpeed()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	g := &Game{
		cfg:        cfg,
		log:        logger,
		field:      starfield.New(cfg.Field, rng),
		ctrl:       speed.NewController(preset),
		limiter:    NewLimiter(cfg.Window.TPS),
		renderer:   newPointRenderer(cfg.Camera),
		gauge:      NewGauge(cfg.Gauge, cfg.Window.TPS),
		hints:      NewHints(cfg.Hints.Delay),
		pointer:    pointerTracker{slop: cfg.Gauge.TapSlop},
		audio:      opts.Audio,
		rec:        opts.Recorder,
		start:      time.Now(),
		presetName: cfg.Speed.Preset,
	}
	g.field.DeriveBuffers(&g.buffers)
	g.Resize(cfg.Window.Width, cfg.Window.Height)
	return g, nil
}

// Controller exposes the speed controller.
func (g *Game) Controller() *speed.Controller { return g.ctrl }

// Buffers returns the buffers derived on the last tick.
func (g *Game) Buffers() *starfield.Buffers { return &g.buffers }

// Gauge returns the speed gauge widget.
func (g *Game) Gauge() *Gauge { return g.gauge }

// Tick returns the number of simulation ticks run.
func (g *Game) Tick() int { return g.tick }

// Summary returns the run aggregates.
func (g *Game) Summary() telemetry.Summary { return g.summary }

// Preset returns the active preset name.
func (g *Game) Preset() string { return g.presetName }

// Apply feeds one input command to the speed controller.
func (g *Game) Apply(cmd speed.Command, now time.Duration) {
	g.ctrl.Apply(cmd)
	g.hints.Input(now)
}

func (g *Game) elapsed() time.Duration { return time.Since(g.start) }

func (g *Game) Update() error {
	now := g.elapsed()
	if err := g.pollInput(now); err != nil {
		return err
	}
	g.hints.Update(now)
	if g.limiter.Ready(now) {
		g.Step()
	}
	return nil
}

// Step runs one simulation tick: smooth speed, move stars, refresh the
// render buffers and the outputs that follow speed.
func (g *Game) Step() {
	current := g.ctrl.Tick()
	recycled := g.field.Update(current)
	g.field.DeriveBuffers(&g.buffers)

	fraction := g.ctrl.Fraction()
	g.gauge.Update(current, fraction)
	g.audio.SetSpeed(fraction)
	g.tick++

	sample := telemetry.SpeedSample{
		Tick:       g.tick,
		Target:     g.ctrl.Target(),
		Current:    current,
		Fraction:   fraction,
		Recycled:   recycled,
		ActiveBars: g.gauge.ActiveBars(),
	}
	g.summary.Add(sample)
	if err := g.rec.Observe(sample); err != nil {
		g.fail("telemetry disabled", err)
		_ = g.rec.Close()
		g.rec = nil
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.renderer.Render(screen, &g.buffers)
	g.gauge.Draw(screen)
	if g.audio != nil {
		g.scope = g.audio.Scope(g.scope[:0], scopeSamples)
		g.gauge.DrawScope(screen, g.scope)
	}
	g.hints.Draw(screen, g.elapsed())

	status := fmt.Sprintf("preset %s  |  target %s", g.presetName, formatSpeed(g.ctrl.Target()))
	if g.audio != nil && g.muted {
		status += "  |  muted"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the window size so a resize reflows the camera and gauge.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Resize updates everything that depends on the viewport size.
func (g *Game) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	g.renderer.Resize(width, height)
	g.gauge.Resize(width, height)
}

// LoadPreset applies a speed preset file, keeping the current speed clamped.
func (g *Game) LoadPreset(path string) error {
	p, err := config.LoadPreset(path, g.ctrl.Config())
	if err != nil {
		return err
	}
	g.ctrl.Configure(p)
	g.presetName = filepath.Base(path)
	g.lastErr = nil
	g.log.Info("speed preset loaded", "path", path, "max_speed", p.MaxSpeed, "key_step", p.KeyStep)
	return nil
}

// nextPreset cycles through the named presets from the config.
func (g *Game) nextPreset() {
	names := g.cfg.PresetNames()
	if len(names) == 0 {
		return
	}
	next := names[0]
	for i, name := range names {
		if name == g.presetName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	g.ctrl.Configure(g.cfg.Speed.Presets[next])
	g.presetName = next
	g.log.Info("speed preset selected", "preset", next)
}

func (g *Game) toggleMute() {
	if g.audio == nil {
		return
	}
	g.muted = g.audio.ToggleMute()
	g.log.Info("engine hum", "muted", g.muted)
}

// fail records a non fatal error for the status line.
func (g *Game) fail(msg string, err error) {
	g.lastErr = err
	g.log.Warn(msg, "error", err)
}
