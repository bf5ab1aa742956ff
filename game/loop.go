package game

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"
)

// Presenter displays a rendered frame. Implementations may enqueue
// commands on the game from their input handling.
type Presenter interface {
	Present(frame *image.RGBA, status Status) error
}

// Run steps the simulation at the configured frame rate and presents every
// frame. It returns nil after an exit command or when MaxTicks is reached,
// and ctx.Err() when ctx is cancelled.
func (g *Game) Run(ctx context.Context, p Presenter) error {
	interval := time.Second / time.Duration(g.cfg.Screen.TargetFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("starting simulation loop", "fps", g.cfg.Screen.TargetFPS, "max_ticks", g.opts.MaxTicks)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		running := g.Step()
		if p != nil {
			if err := p.Present(g.Frame(), g.Status()); err != nil {
				return fmt.Errorf("presenting frame %d: %w", g.tick, err)
			}
			g.RecordFrame()
		}
		if !running {
			return nil
		}
		if g.maxTicksReached() {
			slog.Info("max ticks reached", "tick", g.tick)
			return nil
		}
	}
}

// RunHeadless steps the simulation as fast as possible without presenting.
func (g *Game) RunHeadless(ctx context.Context) error {
	slog.Info("starting headless simulation", "max_ticks", g.opts.MaxTicks)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !g.Step() {
			return nil
		}
		if g.maxTicksReached() {
			slog.Info("max ticks reached", "tick", g.tick)
			return nil
		}
	}
}

func (g *Game) maxTicksReached() bool {
	return g.opts.MaxTicks > 0 && g.tick >= g.opts.MaxTicks
}
