package game

import (
	"log/slog"

	"github.com/pthm-cable/particleflow/telemetry"
)

// flushTelemetry emits window and perf stats when the stats window ends.
func (g *Game) flushTelemetry() {
	if g.collector == nil || !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.snapshot())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// snapshot samples the particle distributions for a stats window.
func (g *Game) snapshot() telemetry.FlowSnapshot {
	particles := g.flow.Particles()
	alphas := make([]float64, len(particles))
	speeds := make([]float64, len(particles))
	for i := range particles {
		alphas[i] = particles[i].Alpha
		speeds[i] = particles[i].Speed
	}
	return telemetry.FlowSnapshot{
		Stage:         g.stage.Number(),
		Depth3D:       g.depth3D,
		Alphas:        alphas,
		Speeds:        speeds,
		TrailCoverage: g.trails.Coverage(),
	}
}

// RecordFrame records presenter frame timing for the perf stats.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// PerfStats returns the rolling performance statistics.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}
