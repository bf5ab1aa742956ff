// Package game owns the particle flow simulation state and the fixed-rate
// loop that advances it.
package game

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand"

	"golang.org/x/image/draw"

	"github.com/pthm-cable/particleflow/config"
	"github.com/pthm-cable/particleflow/renderer"
	"github.com/pthm-cable/particleflow/source"
	"github.com/pthm-cable/particleflow/systems"
	"github.com/pthm-cable/particleflow/telemetry"
)

// commandBuffer bounds the number of commands waiting for the next tick.
const commandBuffer = 64

// Game holds the complete simulation state. All fields are owned by the
// goroutine calling Step; other goroutines interact only through Enqueue.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand
	dt   float64

	// Source image as loaded (nil = procedural pattern) and its viewport-sized copy
	original  image.Image
	imagePath string
	scaled    *image.RGBA

	field    *systems.BrightnessField
	flow     *systems.FlowSystem
	trails   *systems.TrailAccumulator
	renderer *renderer.Renderer

	// frame is drawn into; rendered is the last completed frame
	frame    *image.RGBA
	rendered *image.RGBA

	stage   renderer.Stage
	depth3D bool
	width   int
	height  int
	tick    int64
	exited  bool
	banner  banner

	// fitGeneration counts viewport changes made to fit a loaded image
	fitGeneration int

	commands chan Command

	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
}

// NewGame creates a simulation sized to the configured viewport. When
// opts.ImagePath is set the image is loaded and the viewport fitted to it;
// a failed load falls back to the procedural pattern.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	w, h := cfg.ClampViewport(cfg.Screen.Width, cfg.Screen.Height)
	dt := 1.0 / float64(cfg.Screen.TargetFPS)

	g := &Game{
		cfg:           cfg,
		opts:          opts,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		dt:            dt,
		trails:        systems.NewTrailAccumulator(w, h),
		renderer:      renderer.NewRenderer(cfg),
		frame:         image.NewRGBA(image.Rect(0, 0, w, h)),
		depth3D:       cfg.Depth.Enabled,
		width:         w,
		height:        h,
		commands:      make(chan Command, commandBuffer),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager: outputManager,
		logStats:      opts.LogStats,
	}
	g.rendered = g.frame
	if cfg.Telemetry.LogInterval > 0 {
		g.collector = telemetry.NewCollector(float64(cfg.Telemetry.LogInterval)*dt, dt)
	}
	g.flow = systems.NewFlowSystem(cfg, w, h, g.rng)

	if opts.ImagePath != "" {
		g.reloadPath(opts.ImagePath)
	} else {
		g.rebuildSource()
	}

	slog.Info("simulation ready",
		"width", g.width,
		"height", g.height,
		"particles", g.flow.Len(),
		"grid_w", g.field.W,
		"grid_h", g.field.H,
		"seed", opts.Seed,
	)
	return g, nil
}

// Enqueue posts a command for the next tick. It never blocks; when the
// queue is full the command is dropped and false returned.
func (g *Game) Enqueue(cmd Command) bool {
	select {
	case g.commands <- cmd:
		return true
	default:
		slog.Warn("command queue full, dropping command", "command", cmd.Kind.String())
		return false
	}
}

// Frame returns the most recently rendered frame.
func (g *Game) Frame() *image.RGBA {
	return g.rendered
}

// Stage returns the current visualization stage.
func (g *Game) Stage() renderer.Stage {
	return g.stage
}

// Depth3D reports whether the red/blue pseudo-3-D mode is on.
func (g *Game) Depth3D() bool {
	return g.depth3D
}

// Size returns the viewport dimensions.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

// Tick returns the number of completed steps.
func (g *Game) Tick() int64 {
	return g.tick
}

// Exited reports whether an exit command has been applied.
func (g *Game) Exited() bool {
	return g.exited
}

// Field returns the current brightness field.
func (g *Game) Field() *systems.BrightnessField {
	return g.field
}

// Flow returns the particle system.
func (g *Game) Flow() *systems.FlowSystem {
	return g.flow
}

// Trails returns the trail accumulator.
func (g *Game) Trails() *systems.TrailAccumulator {
	return g.trails
}

// BannerAlpha returns the stage banner opacity in [0,1].
func (g *Game) BannerAlpha() float32 {
	return g.banner.alpha
}

// Status describes the state a presenter overlays on the frame.
type Status struct {
	Stage       renderer.Stage
	Depth3D     bool
	Text        string // One-line status for the HUD
	Banner      string // Stage name shown while BannerAlpha > 0
	BannerAlpha float32
	Tick        int64

	// FitGeneration changes whenever the viewport was refitted to a newly
	// loaded image; windowed presenters resize themselves to match.
	FitGeneration int
}

// Status returns the HUD state for the current frame.
func (g *Game) Status() Status {
	return Status{
		Stage:       g.stage,
		Depth3D:     g.depth3D,
		Text:        renderer.StatusText(g.stage, g.depth3D, g.width, g.cfg.HUD.CompactBelow),
		Banner:      g.banner.text,
		BannerAlpha: g.banner.alpha,
		Tick:        g.tick,

		FitGeneration: g.fitGeneration,
	}
}

// scene bundles the state the renderer reads.
func (g *Game) scene() *renderer.Scene {
	scene := &renderer.Scene{
		Field:   g.field,
		Flow:    g.flow,
		Trails:  g.trails,
		Depth3D: g.depth3D,
	}
	if g.scaled != nil {
		scene.Source = g.scaled
	}
	return scene
}

// rebuildSource resamples the source to the viewport and rebuilds the
// brightness field from it. A degenerate image leaves the field empty so
// particles see neutral brightness.
func (g *Game) rebuildSource() {
	if g.original != nil && g.original.Bounds().Empty() {
		g.scaled = nil
		g.field = systems.BuildBrightnessField(nil, g.cfg.Field.Detail)
		return
	}
	if g.original == nil {
		pattern := source.Default(g.width, g.height, g.cfg.Pattern, g.opts.Seed)
		g.scaled = image.NewRGBA(image.Rect(0, 0, g.width, g.height))
		draw.Draw(g.scaled, g.scaled.Bounds(), pattern, image.Point{}, draw.Src)
	} else {
		g.scaled = source.Resample(g.original, g.width, g.height)
	}
	g.field = systems.BuildBrightnessField(g.scaled, g.cfg.Field.Detail)
}

// Unload releases output resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.WriteFrame("final.png", g.rendered); err != nil {
			slog.Error("failed to write final frame", "error", err)
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
