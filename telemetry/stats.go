package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated flow statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State at window end
	Stage     int  `csv:"stage"`
	Depth3D   bool `csv:"depth_3d"`
	Particles int  `csv:"particles"`

	// Commands applied during the window
	StageChanges int `csv:"stage_changes"`
	Resets       int `csv:"resets"`
	Reloads      int `csv:"reloads"`
	Resizes      int `csv:"resizes"`
	TrailClears  int `csv:"trail_clears"`

	// Particle alpha distribution (sampled at window end)
	AlphaMean float64 `csv:"alpha_mean"`
	AlphaP10  float64 `csv:"alpha_p10"`
	AlphaP50  float64 `csv:"alpha_p50"`
	AlphaP90  float64 `csv:"alpha_p90"`

	// Particle speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`

	// Fraction of trail pixels with any coverage
	TrailCoverage float64 `csv:"trail_coverage"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles of values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// ComputeSpread calculates mean and population standard deviation of values.
func ComputeSpread(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.Mean(values, nil), stat.PopStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("stage", s.Stage),
		slog.Bool("depth_3d", s.Depth3D),
		slog.Int("particles", s.Particles),
		slog.Int("stage_changes", s.StageChanges),
		slog.Int("resets", s.Resets),
		slog.Int("reloads", s.Reloads),
		slog.Int("resizes", s.Resizes),
		slog.Int("trail_clears", s.TrailClears),
		slog.Float64("alpha_mean", s.AlphaMean),
		slog.Float64("alpha_p10", s.AlphaP10),
		slog.Float64("alpha_p50", s.AlphaP50),
		slog.Float64("alpha_p90", s.AlphaP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("trail_coverage", s.TrailCoverage),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"stage", s.Stage,
		"depth_3d", s.Depth3D,
		"particles", s.Particles,
		"alpha_mean", s.AlphaMean,
		"alpha_p50", s.AlphaP50,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"trail_coverage", s.TrailCoverage,
	)
}
