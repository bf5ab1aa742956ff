package systems

import (
	"math/rand"

	"github.com/pthm-cable/particleflow/config"
)

// FlowSystem owns the particle batch. Particles are created and destroyed
// together by Reset; there is no per-particle lifecycle.
type FlowSystem struct {
	particles []Particle
	params    FlowParams
	count     int
	maxTrail  int
	jitter    float64
	minAlpha  float64
	rng       *rand.Rand
}

// NewFlowSystem creates a flow system for a width x height viewport and
// populates it with cfg.Particles.Count particles.
func NewFlowSystem(cfg *config.Config, width, height int, rng *rand.Rand) *FlowSystem {
	s := &FlowSystem{
		params: FlowParams{
			Width:         float64(width),
			Height:        float64(height),
			MaxSpeed:      cfg.Particles.MaxSpeed,
			Drift:         cfg.Particles.Drift,
			VerticalScale: cfg.Particles.VerticalScale,
		},
		count:    cfg.Particles.Count,
		maxTrail: cfg.Trail.HistoryLength,
		jitter:   cfg.Particles.VelocityJitter,
		minAlpha: cfg.Particles.MinAlpha,
		rng:      rng,
	}
	s.Reset()
	return s
}

// Reset recreates every particle on evenly spaced starting rows with a
// random horizontal position.
func (s *FlowSystem) Reset() {
	if cap(s.particles) < s.count {
		s.particles = make([]Particle, s.count)
	}
	s.particles = s.particles[:s.count]

	for i := range s.particles {
		y := float64(i) / float64(s.count) * s.params.Height
		x := s.rng.Float64() * s.params.Width
		s.particles[i] = NewParticle(x, y, s.maxTrail, s.jitter, s.minAlpha, s.rng)
	}
}

// Update advances every particle one frame through field.
func (s *FlowSystem) Update(field *BrightnessField) {
	for i := range s.particles {
		s.particles[i].Update(field, &s.params, s.rng)
	}
}

// Resize changes the wrap bounds. Particles outside the new bounds wrap on
// their next update.
func (s *FlowSystem) Resize(width, height int) {
	s.params.Width = float64(width)
	s.params.Height = float64(height)
}

// Params returns the shared motion parameters.
func (s *FlowSystem) Params() FlowParams {
	return s.params
}

// Particles returns the particle batch. Callers must not retain it across Reset.
func (s *FlowSystem) Particles() []Particle {
	return s.particles
}

// Few returns at most n particles from the front of the batch.
func (s *FlowSystem) Few(n int) []Particle {
	return s.particles[:min(max(n, 0), len(s.particles))]
}

// Len returns the number of particles.
func (s *FlowSystem) Len() int {
	return len(s.particles)
}
