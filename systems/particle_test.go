package systems

import (
	"math"
	"math/rand"
	"testing"
)

func testParams(w, h float64) *FlowParams {
	return &FlowParams{
		Width:         w,
		Height:        h,
		MaxSpeed:      4,
		Drift:         2.5,
		VerticalScale: 0.3,
	}
}

func TestParticleUniformBrightField(t *testing.T) {
	field := BuildBrightnessField(uniformImage(16, 16, 255), 16)
	rng := rand.New(rand.NewSource(1))

	p := NewParticle(4, 4, DefaultTrailLength, 0.5, 0.3, rng)
	p.Update(field, testParams(16, 16), rng)

	if p.Speed != 4 {
		t.Errorf("expected speed = max speed 4, got %f", p.Speed)
	}
	if p.Alpha != 1.0 {
		t.Errorf("expected alpha 1.0, got %f", p.Alpha)
	}
	if p.Depth != 1.0 {
		t.Errorf("expected depth 1.0, got %f", p.Depth)
	}
}

func TestParticleMotion(t *testing.T) {
	field := BuildBrightnessField(uniformImage(64, 64, 0), 16)
	rng := rand.New(rand.NewSource(2))

	p := NewParticle(10, 20, DefaultTrailLength, 0.5, 0.3, rng)
	p.VelX, p.VelY = 0.25, -0.5
	p.Update(field, testParams(64, 64), rng)

	// Black field: full drift
	wantX := 10 + 2.5 + 0.25
	wantY := 20 - 0.5*0.3
	if math.Abs(p.X-wantX) > 1e-9 || math.Abs(p.Y-wantY) > 1e-9 {
		t.Errorf("expected (%f, %f), got (%f, %f)", wantX, wantY, p.X, p.Y)
	}
	if p.PrevX != 10 || p.PrevY != 20 {
		t.Errorf("expected previous position (10, 20), got (%f, %f)", p.PrevX, p.PrevY)
	}
	if p.Alpha != 0.1 {
		t.Errorf("expected alpha 0.1 on black field, got %f", p.Alpha)
	}
	if p.Speed != 0 {
		t.Errorf("expected zero speed on black field, got %f", p.Speed)
	}
}

func TestParticleVelocityFixed(t *testing.T) {
	field := BuildBrightnessField(uniformImage(64, 64, 128), 16)
	rng := rand.New(rand.NewSource(3))

	p := NewParticle(10, 10, DefaultTrailLength, 0.5, 0.3, rng)
	vx, vy := p.VelX, p.VelY
	if math.Abs(vx) > 0.5 || math.Abs(vy) > 0.5 {
		t.Fatalf("velocity (%f, %f) outside jitter range", vx, vy)
	}

	params := testParams(64, 64)
	for i := 0; i < 100; i++ {
		p.Update(field, params, rng)
	}
	if p.VelX != vx || p.VelY != vy {
		t.Errorf("velocity changed from (%f, %f) to (%f, %f)", vx, vy, p.VelX, p.VelY)
	}
}

func TestParticleTrailBound(t *testing.T) {
	// Neutral field over a huge viewport so the particle never wraps
	rng := rand.New(rand.NewSource(4))
	p := NewParticle(0, 500, DefaultTrailLength, 0, 0.3, rng)
	params := testParams(1e9, 1e9)

	for i := 0; i < 100; i++ {
		p.Update(nil, params, rng)
		if p.TrailLen() > DefaultTrailLength {
			t.Fatalf("update %d: trail length %d exceeds %d", i, p.TrailLen(), DefaultTrailLength)
		}
	}
	if p.TrailLen() != DefaultTrailLength {
		t.Errorf("expected full trail of %d, got %d", DefaultTrailLength, p.TrailLen())
	}
}

func TestParticleTrailFIFO(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := NewParticle(0, 500, 3, 0, 0.3, rng)
	params := testParams(1e9, 1e9)

	var xs []float64
	for i := 0; i < 5; i++ {
		xs = append(xs, p.X)
		p.Update(nil, params, rng)
	}

	trail := p.Trail()
	if len(trail) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(trail))
	}
	// Oldest two evicted; remaining are the last three recorded positions in order
	for i, pt := range trail {
		if pt.X != xs[i+2] {
			t.Errorf("entry %d: expected x %f, got %f", i, xs[i+2], pt.X)
		}
	}
}

func TestParticleTrailRecordsState(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	p := NewParticle(5, 6, DefaultTrailLength, 0, 0.3, rng)
	alpha, depth := p.Alpha, p.Depth

	p.Update(nil, testParams(100, 100), rng)

	pt := p.Trail()[0]
	if pt.X != 5 || pt.Y != 6 || pt.Alpha != alpha || pt.Depth != depth {
		t.Errorf("expected pre-update state recorded, got %+v", pt)
	}
}

func TestParticleWrapRight(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	params := testParams(100, 80)

	p := NewParticle(params.Width+1, 40, DefaultTrailLength, 0, 0.3, rng)
	p.Update(nil, params, rng)

	if p.X != 0 {
		t.Errorf("expected x reset to 0, got %f", p.X)
	}
	if p.TrailLen() != 0 {
		t.Errorf("expected cleared trail after wrap, got %d", p.TrailLen())
	}
	if p.Y < 0 || p.Y > params.Height {
		t.Errorf("expected re-randomised y inside viewport, got %f", p.Y)
	}
}

func TestParticleWrapLeft(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	params := testParams(100, 80)
	params.Drift = 0

	p := NewParticle(0.1, 40, DefaultTrailLength, 0, 0.3, rng)
	p.VelX = -1
	p.Update(nil, params, rng)

	if p.X != params.Width {
		t.Errorf("expected x wrapped to %f, got %f", params.Width, p.X)
	}
	if p.Y != 40 {
		t.Errorf("expected y untouched by left wrap, got %f", p.Y)
	}
	if p.TrailLen() != 0 {
		t.Errorf("expected cleared trail, got %d", p.TrailLen())
	}
}

func TestParticleWrapVertical(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	params := testParams(100, 80)
	params.Drift = 0

	down := NewParticle(50, 79.9, DefaultTrailLength, 0, 0.3, rng)
	down.VelY = 1
	down.Update(nil, params, rng)
	if down.Y != 0 {
		t.Errorf("expected y reset to 0, got %f", down.Y)
	}
	if down.X != 50 {
		t.Errorf("expected x untouched by vertical wrap, got %f", down.X)
	}
	if down.TrailLen() != 0 {
		t.Errorf("expected cleared trail, got %d", down.TrailLen())
	}

	up := NewParticle(50, 0.1, DefaultTrailLength, 0, 0.3, rng)
	up.VelY = -1
	up.Update(nil, params, rng)
	if up.Y != params.Height {
		t.Errorf("expected y wrapped to %f, got %f", params.Height, up.Y)
	}
	if up.TrailLen() != 0 {
		t.Errorf("expected cleared trail, got %d", up.TrailLen())
	}
}

func TestParticleAlphaBound(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	params := testParams(64, 64)

	for _, v := range []uint8{0, 1, 64, 128, 200, 255} {
		field := BuildBrightnessField(uniformImage(64, 64, v), 16)
		p := NewParticle(rng.Float64()*64, rng.Float64()*64, DefaultTrailLength, 0.5, 0.3, rng)
		for i := 0; i < 20; i++ {
			p.Update(field, params, rng)
			if p.Alpha < 0.1-1e-12 || p.Alpha > 1.0 {
				t.Fatalf("brightness %d: alpha %f outside [0.1, 1]", v, p.Alpha)
			}
		}
	}
}

func TestNewParticleInitialRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		p := NewParticle(0, 0, DefaultTrailLength, 0.5, 0.3, rng)
		if p.Alpha < 0.3 || p.Alpha > 1 {
			t.Fatalf("initial alpha %f outside [0.3, 1]", p.Alpha)
		}
		if p.Depth < 0 || p.Depth > 1 {
			t.Fatalf("initial depth %f outside [0, 1]", p.Depth)
		}
		if p.MaxTrail() != DefaultTrailLength {
			t.Fatalf("expected capacity %d, got %d", DefaultTrailLength, p.MaxTrail())
		}
	}
}

func TestParticleDeterministicWithSeed(t *testing.T) {
	field := BuildBrightnessField(uniformImage(64, 64, 90), 16)
	params := testParams(64, 64)

	run := func() Particle {
		rng := rand.New(rand.NewSource(42))
		p := NewParticle(3, 3, DefaultTrailLength, 0.5, 0.3, rng)
		for i := 0; i < 500; i++ {
			p.Update(field, params, rng)
		}
		return p
	}

	a, b := run(), run()
	if a.X != b.X || a.Y != b.Y {
		t.Errorf("same seed diverged: (%f, %f) vs (%f, %f)", a.X, a.Y, b.X, b.Y)
	}
}
