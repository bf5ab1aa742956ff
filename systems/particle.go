package systems

import "math/rand"

// DefaultTrailLength is the per-particle history capacity used when none is configured.
const DefaultTrailLength = 20

// TrailPoint is one remembered particle state.
type TrailPoint struct {
	X, Y  float64
	Alpha float64
	Depth float64
}

// FlowParams holds the motion parameters shared by every particle.
type FlowParams struct {
	Width, Height float64 // Viewport bounds used for wrapping
	MaxSpeed      float64 // Speed at brightness 1.0
	Drift         float64 // Horizontal drift at brightness 0.0
	VerticalScale float64 // Multiplier on VelY
}

// Particle is a single point advected across the brightness field.
// VelX and VelY are assigned at creation and never re-randomised.
type Particle struct {
	X, Y         float64
	PrevX, PrevY float64
	VelX, VelY   float64
	Speed        float64
	Alpha        float64
	Depth        float64

	// History, oldest first
	trail    []TrailPoint
	maxTrail int
}

// NewParticle creates a particle at (x, y) with velocity components drawn
// uniformly from [-jitter, jitter] and an initial alpha in [minAlpha, 1].
func NewParticle(x, y float64, maxTrail int, jitter, minAlpha float64, rng *rand.Rand) Particle {
	if maxTrail <= 0 {
		maxTrail = DefaultTrailLength
	}
	return Particle{
		X:        x,
		Y:        y,
		PrevX:    x,
		PrevY:    y,
		VelX:     (rng.Float64()*2 - 1) * jitter,
		VelY:     (rng.Float64()*2 - 1) * jitter,
		Alpha:    minAlpha + rng.Float64()*(1-minAlpha),
		Depth:    rng.Float64(),
		trail:    make([]TrailPoint, 0, maxTrail),
		maxTrail: maxTrail,
	}
}

// Update advances the particle one frame through field.
// rng is only consulted when the particle wraps off the right edge.
func (p *Particle) Update(field *BrightnessField, params *FlowParams, rng *rand.Rand) {
	// Record current state, evicting the oldest entry when full
	if p.maxTrail <= 0 {
		p.maxTrail = DefaultTrailLength
	}
	if len(p.trail) >= p.maxTrail {
		n := copy(p.trail, p.trail[len(p.trail)-p.maxTrail+1:])
		p.trail = p.trail[:n]
	}
	p.trail = append(p.trail, TrailPoint{X: p.X, Y: p.Y, Alpha: p.Alpha, Depth: p.Depth})

	brightness := field.Sample(p.X, p.Y)

	p.Speed = brightness * params.MaxSpeed

	p.PrevX, p.PrevY = p.X, p.Y
	p.X += (1-brightness)*params.Drift + p.VelX
	p.Y += p.VelY * params.VerticalScale

	// Wrap horizontally
	if p.X > params.Width {
		p.X = 0
		if rng != nil {
			p.Y = rng.Float64() * params.Height
		}
		p.trail = p.trail[:0]
	} else if p.X < 0 {
		p.X = params.Width
		p.trail = p.trail[:0]
	}

	// Wrap vertically, independent of x
	if p.Y > params.Height {
		p.Y = 0
		p.trail = p.trail[:0]
	} else if p.Y < 0 {
		p.Y = params.Height
		p.trail = p.trail[:0]
	}

	p.Alpha = clamp01(brightness*0.9 + 0.1)
	p.Depth = brightness
}

// Trail returns the history, oldest first. The slice is owned by the particle.
func (p *Particle) Trail() []TrailPoint {
	return p.trail
}

// TrailLen returns the number of remembered states.
func (p *Particle) TrailLen() int {
	return len(p.trail)
}

// MaxTrail returns the history capacity.
func (p *Particle) MaxTrail() int {
	return p.maxTrail
}

// ClearTrail forgets all remembered states.
func (p *Particle) ClearTrail() {
	p.trail = p.trail[:0]
}
