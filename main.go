package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swash/config"
	"github.com/pthm-cable/swash/foam"
	"github.com/pthm-cable/swash/renderer"
	"github.com/pthm-cable/swash/swell"
	"github.com/pthm-cable/swash/telemetry"
	"github.com/pthm-cable/swash/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV stats and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	debugLog := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debugLog {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	d := newDemo(cfg, rngSeed, output)

	if *headless {
		slog.Info("starting headless run",
			"seed", rngSeed,
			"variant", d.pipeline.Variant.String(),
			"max_frames", *maxFrames,
		)
		const dt = 1.0 / 60.0
		for frame := 0; *maxFrames == 0 || frame < *maxFrames; frame++ {
			d.step(dt, nil)
		}
		d.logPerf()
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Swash")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	slog.Info("starting demo", "seed", rngSeed, "variant", d.pipeline.Variant.String())

	for frame := 0; !rl.WindowShouldClose(); frame++ {
		d.handleInput()

		rl.BeginDrawing()
		d.background.Draw()
		d.step(float64(rl.GetFrameTime()), d.foamRenderer)
		if d.settings.ShowField {
			d.foamRenderer.DrawFieldOverlay(d.pipeline.Field())
		}
		d.panel.Draw(&d.settings, d.lastStats)
		rl.EndDrawing()

		if *maxFrames > 0 && frame >= *maxFrames {
			break
		}
	}
	d.logPerf()
}

// demo wires the wave simulation, foam pipeline, renderers and
// telemetry together.
type demo struct {
	pipeline *foam.Pipeline
	waves    *swell.System

	background   *renderer.OceanBackground
	foamRenderer *renderer.FoamRenderer
	panel        *ui.ControlsPanel
	settings     ui.Settings

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	lastStats []foam.RingStats
}

func newDemo(cfg *config.Config, seed int64, output *telemetry.OutputManager) *demo {
	thresholds := make([]foam.Threshold, 0, len(cfg.Foam.Thresholds))
	for _, tc := range cfg.Foam.Thresholds {
		style := foam.StrokeStyle{R: 255, G: 255, B: 255, A: 255, Width: float32(tc.Width)}
		if len(tc.Color) == 4 {
			style.R, style.G, style.B, style.A = tc.Color[0], tc.Color[1], tc.Color[2], tc.Color[3]
		}
		thresholds = append(thresholds, foam.Threshold{Value: float32(tc.Value), Style: style})
	}

	pipeline := foam.NewPipeline(cfg.Grid.Width, cfg.Grid.Height, thresholds)
	pipeline.Variant = foam.ParseVariant(cfg.Foam.Variant)
	pipeline.Passes = cfg.Foam.BlurPasses
	pipeline.ClosedLoops = cfg.Foam.ClosedLoops
	pipeline.SimplifyTolerance = float32(cfg.Foam.SimplifyTolerance)

	waves := swell.New(swell.Params{
		ScreenW:       cfg.Derived.ScreenW32,
		ScreenH:       cfg.Derived.ScreenH32,
		MaxCrests:     cfg.Swell.MaxCrests,
		SpawnInterval: cfg.Swell.SpawnInterval,
		MinSpeed:      float32(cfg.Swell.MinSpeed),
		MaxSpeed:      float32(cfg.Swell.MaxSpeed),
		BreakYMin:     float32(cfg.Swell.BreakYMin),
		BreakYMax:     float32(cfg.Swell.BreakYMax),
		BandDecay:     float32(cfg.Swell.BandDecay),
		MaxBands:      cfg.Swell.MaxBands,
		NoiseScale:    cfg.Swell.NoiseScale,
		NoiseCutoff:   cfg.Swell.NoiseCutoff,
	}, seed)

	d := &demo{
		pipeline:     pipeline,
		waves:        waves,
		background:   renderer.NewOceanBackground(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),
		foamRenderer: renderer.NewFoamRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),
		panel:        ui.NewControlsPanel(20, 20, 300),
		settings: ui.Settings{
			Variant:     pipeline.Variant,
			BlurPasses:  pipeline.Passes,
			ClosedLoops: pipeline.ClosedLoops,
		},
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, output),
	}
	pipeline.PhaseHook = d.perf.StartPhase
	return d
}

// step advances the waves and renders one foam frame into target.
// target may be nil in headless mode.
func (d *demo) step(dt float64, target foam.StrokeTarget) {
	cfg := config.Cfg()

	d.perf.StartFrame()
	d.perf.StartPhase(telemetry.PhaseSwell)
	d.waves.Step(dt)

	d.lastStats = d.pipeline.Render(d.waves.Bands(), cfg.Derived.ScreenH32, d.waves.Time(), target)
	d.perf.EndFrame()

	totalSegs := 0
	for _, st := range d.lastStats {
		totalSegs += st.Segments
	}
	d.collector.RecordFrame(totalSegs,
		float64(d.perf.LastFrame())/float64(time.Millisecond),
		d.pipeline.Field().Mass())
	d.collector.Tick(d.waves.Time(), len(d.waves.Bands()), d.waves.CrestCount())
}

// handleInput applies keyboard shortcuts and panel edits.
func (d *demo) handleInput() {
	if rl.IsKeyPressed(rl.KeyTab) {
		d.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		d.settings.Variant = (d.settings.Variant + 1) % 4
	}
	if rl.IsKeyPressed(rl.KeyF) {
		d.settings.ShowField = !d.settings.ShowField
	}

	d.pipeline.Variant = d.settings.Variant
	d.pipeline.Passes = d.settings.BlurPasses
	d.pipeline.ClosedLoops = d.settings.ClosedLoops
}

// logPerf emits the rolling phase breakdown.
func (d *demo) logPerf() {
	for _, phase := range d.perf.SortedPhases() {
		slog.Info("perf", "phase", phase, "avg", d.perf.Avg(phase).Round(time.Microsecond).String())
	}
	slog.Info("perf", "phase", "frame", "avg", d.perf.AvgFrame().Round(time.Microsecond).String())
}
