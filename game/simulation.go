package game

import (
	"image"
	"log/slog"

	"github.com/pthm-cable/particleflow/renderer"
	"github.com/pthm-cable/particleflow/source"
	"github.com/pthm-cable/particleflow/systems"
	"github.com/pthm-cable/particleflow/telemetry"
)

// Step runs one tick: advance particles, advance trails when the trail
// stage is shown, render the stage, then apply pending commands. It
// returns false once an exit command has been applied.
func (g *Game) Step() bool {
	if g.exited {
		return false
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseParticles)
	g.flow.Update(g.field)

	g.perfCollector.StartPhase(telemetry.PhaseTrails)
	if g.stage.NeedsTrails() {
		g.trails.Decay(g.cfg.Trail.Fade)
		g.trails.StampAll(g.flow.Particles(), systems.StampStyle(g.cfg, g.depth3D))
	}

	g.perfCollector.StartPhase(telemetry.PhaseRender)
	g.renderer.Render(g.frame, g.stage, g.scene())
	g.rendered = g.frame

	g.perfCollector.StartPhase(telemetry.PhaseCommands)
	g.drainCommands()

	g.perfCollector.EndTick()

	g.banner.update(float32(g.dt))
	g.tick++
	g.flushTelemetry()

	return !g.exited
}

// drainCommands applies every queued command in arrival order.
func (g *Game) drainCommands() {
	for {
		select {
		case cmd := <-g.commands:
			g.apply(cmd)
		default:
			return
		}
	}
}

func (g *Game) apply(cmd Command) {
	switch cmd.Kind {
	case CmdNextStage:
		g.setStage(g.stage.Next())
		if g.collector != nil {
			g.collector.RecordStageChange()
		}
	case CmdReset:
		g.reset()
	case CmdReload:
		switch {
		case cmd.Image != nil:
			g.reloadImage(cmd.Image)
		case cmd.Path != "":
			g.reloadPath(cmd.Path)
		case g.imagePath != "":
			g.reloadPath(g.imagePath)
		default:
			g.reloadImage(nil)
		}
		if g.collector != nil {
			g.collector.RecordReload()
		}
	case CmdToggle3D:
		g.depth3D = !g.depth3D
		slog.Info("pseudo-3D toggled", "enabled", g.depth3D)
	case CmdClearTrails:
		g.trails.Clear()
		if g.collector != nil {
			g.collector.RecordTrailClear()
		}
	case CmdResize:
		g.resize(cmd.Width, cmd.Height)
	case CmdExit:
		g.exited = true
		slog.Info("exit requested", "tick", g.tick)
	default:
		slog.Warn("unknown command", "command", cmd.Kind.String())
	}
}

func (g *Game) setStage(s renderer.Stage) {
	g.stage = s
	g.banner.show(s.String(), g.cfg.HUD.BannerSeconds)
	slog.Info("stage changed", "stage", s.Number(), "name", s.String())
}

// reset returns particles to their starting rows and clears the trail buffer.
func (g *Game) reset() {
	g.flow.Reset()
	g.trails.Clear()
	if g.collector != nil {
		g.collector.RecordReset()
	}
}

// reloadPath loads an image from disk. A missing or undecodable file
// falls back to the procedural pattern.
func (g *Game) reloadPath(path string) {
	img, err := source.Load(path)
	if err != nil {
		slog.Warn("image load failed, using procedural pattern", "path", path, "error", err)
		g.imagePath = ""
		g.reloadImage(nil)
		return
	}
	g.imagePath = path
	slog.Info("image loaded", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	g.reloadImage(img)
}

// reloadImage replaces the source. A nil image selects the procedural
// pattern at the current viewport size; otherwise the viewport is fitted
// to the image. Particles restart and the stage returns to the first.
func (g *Game) reloadImage(img image.Image) {
	g.original = img
	if img != nil && !img.Bounds().Empty() {
		w, h := source.FitViewport(img.Bounds().Dx(), img.Bounds().Dy(), g.cfg.Screen)
		g.setViewport(w, h)
		g.fitGeneration++
	}
	g.rebuildSource()
	g.flow.Reset()
	g.trails.Clear()
	g.setStage(renderer.StageGrid)
}

// resize changes the viewport within the configured extents. Particles
// keep their positions and wrap against the new bounds on their next update.
func (g *Game) resize(w, h int) {
	w, h = g.cfg.ClampViewport(w, h)
	if w == g.width && h == g.height {
		return
	}
	g.setViewport(w, h)
	g.rebuildSource()
	if g.collector != nil {
		g.collector.RecordResize()
	}
	slog.Info("viewport resized", "width", w, "height", h)
}

// setViewport reallocates every buffer sized to the viewport.
func (g *Game) setViewport(w, h int) {
	w, h = g.cfg.ClampViewport(w, h)
	g.width, g.height = w, h
	g.trails.Resize(w, h)
	g.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	g.flow.Resize(w, h)
}
