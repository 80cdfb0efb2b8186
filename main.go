package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/warpfield/internal/audio"
	"github.com/iburimskiy/warpfield/internal/config"
	"github.com/iburimskiy/warpfield/internal/game"
	"github.com/iburimskiy/warpfield/internal/speed"
	"github.com/iburimskiy/warpfield/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Speed preset name (empty = use config)")
	stars := flag.Int("stars", 0, "Star count (0 = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	withAudio := flag.Bool("audio", false, "Play the engine hum")
	outputDir := flag.String("output-dir", "", "Directory for speed.csv and a config snapshot")
	headless := flag.Bool("headless", false, "Run the tick loop without a window")
	maxTicks := flag.Int("max-ticks", 600, "Ticks to run in headless mode")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(options{
		configPath: *configPath,
		preset:     *preset,
		stars:      *stars,
		seed:       *seed,
		audio:      *withAudio,
		outputDir:  *outputDir,
		headless:   *headless,
		maxTicks:   *maxTicks,
	}); err != nil {
		slog.Error("warpfield failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	preset     string
	stars      int
	seed       uint64
	audio      bool
	outputDir  string
	headless   bool
	maxTicks   int
}

func run(o options) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.preset != "" {
		cfg.Speed.Preset = o.preset
	}
	if o.stars > 0 {
		cfg.Field.Count = o.stars
	}
	if o.outputDir != "" {
		cfg.Telemetry.OutputDir = o.outputDir
	}
	if o.audio {
		cfg.Audio.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rngSeed := o.seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	rec, err := telemetry.NewRecorder(cfg.Telemetry.OutputDir, cfg.Telemetry.SampleInterval)
	if err != nil {
		return err
	}
	defer rec.Close()
	if err := rec.WriteConfig(cfg); err != nil {
		return err
	}

	var player *audio.Player
	if cfg.Audio.Enabled && !o.headless {
		player, err = audio.Start(cfg.Audio.SampleRate, cfg.Audio.BaseFreq, cfg.Audio.PeakFreq, cfg.Audio.Volume)
		if err != nil {
			// The field still works without sound.
			slog.Warn("engine hum unavailable", "error", err)
			player = nil
		} else {
			defer player.Stop()
		}
	}

	g, err := game.New(game.Options{
		Config:   cfg,
		Seed:     rngSeed,
		Audio:    player,
		Recorder: rec,
		Logger:   slog.Default(),
	})
	if err != nil {
		return err
	}

	slog.Info("starting warpfield",
		"seed", rngSeed,
		"stars", cfg.Field.Count,
		"preset", cfg.Speed.Preset,
		"headless", o.headless,
		"audio", player != nil,
		"output_dir", rec.Dir(),
	)

	if o.headless {
		runHeadless(g, o.maxTicks)
		return nil
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Update runs once per display refresh; the game's limiter gates ticks.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	logSummary(g)
	return nil
}

// runHeadless engages cruise, then stops halfway through the run.
func runHeadless(g *game.Game, maxTicks int) {
	g.Apply(speed.Command{Kind: speed.Cruise}, 0)
	for g.Tick() < maxTicks {
		if g.Tick() == maxTicks/2 {
			g.Apply(speed.Command{Kind: speed.Cruise}, 0)
		}
		g.Step()
	}
	logSummary(g)
}

func logSummary(g *game.Game) {
	s := g.Summary()
	slog.Info("run complete",
		"ticks", s.Ticks,
		"recycled", s.Recycled,
		"peak_speed", s.PeakSpeed,
		"final_speed", g.Controller().Current(),
	)
}
