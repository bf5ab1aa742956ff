package telemetry

// Collector accumulates command counts within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	stageChanges int
	resets       int
	reloads      int
	resizes      int
	trailClears  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(1)
	if dt > 0 {
		ticksPerWindow = max(1, int64(windowDurationSec/dt))
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordStageChange records an applied next-stage command.
func (c *Collector) RecordStageChange() { c.stageChanges++ }

// RecordReset records an applied reset.
func (c *Collector) RecordReset() { c.resets++ }

// RecordReload records an applied image reload.
func (c *Collector) RecordReload() { c.reloads++ }

// RecordResize records an applied viewport resize.
func (c *Collector) RecordResize() { c.resizes++ }

// RecordTrailClear records an applied trail clear.
func (c *Collector) RecordTrailClear() { c.trailClears++ }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// FlowSnapshot is the simulation state sampled at the end of a window.
type FlowSnapshot struct {
	Stage         int
	Depth3D       bool
	Alphas        []float64
	Speeds        []float64
	TrailCoverage float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, snap FlowSnapshot) WindowStats {
	alphaMean, alphaP10, alphaP50, alphaP90 := ComputeDistribution(snap.Alphas)
	speedMean, speedStd := ComputeSpread(snap.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Stage:     snap.Stage,
		Depth3D:   snap.Depth3D,
		Particles: len(snap.Alphas),

		StageChanges: c.stageChanges,
		Resets:       c.resets,
		Reloads:      c.reloads,
		Resizes:      c.resizes,
		TrailClears:  c.trailClears,

		AlphaMean: alphaMean,
		AlphaP10:  alphaP10,
		AlphaP50:  alphaP50,
		AlphaP90:  alphaP90,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,

		TrailCoverage: snap.TrailCoverage,
	}

	c.windowStartTick = currentTick
	c.stageChanges = 0
	c.resets = 0
	c.reloads = 0
	c.resizes = 0
	c.trailClears = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
