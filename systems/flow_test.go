package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/particleflow/config"
)

func testConfig(count int) *config.Config {
	cfg := config.Default()
	cfg.Particles.Count = count
	return cfg
}

func TestFlowSystemResetRows(t *testing.T) {
	cfg := testConfig(100)
	s := NewFlowSystem(cfg, 200, 400, rand.New(rand.NewSource(1)))

	if s.Len() != 100 {
		t.Fatalf("expected 100 particles, got %d", s.Len())
	}
	for i, p := range s.Particles() {
		wantY := float64(i) / 100 * 400
		if p.Y != wantY {
			t.Errorf("particle %d: expected row y %f, got %f", i, wantY, p.Y)
		}
		if p.X < 0 || p.X >= 200 {
			t.Errorf("particle %d: x %f outside viewport", i, p.X)
		}
		if p.TrailLen() != 0 {
			t.Errorf("particle %d: expected empty trail", i)
		}
	}
}

func TestFlowSystemResetClearsHistory(t *testing.T) {
	cfg := testConfig(10)
	s := NewFlowSystem(cfg, 200, 200, rand.New(rand.NewSource(2)))
	field := BuildBrightnessField(uniformImage(200, 200, 255), 16)

	for i := 0; i < 5; i++ {
		s.Update(field)
	}
	s.Reset()

	for i, p := range s.Particles() {
		if p.TrailLen() != 0 {
			t.Errorf("particle %d: expected empty trail after reset, got %d", i, p.TrailLen())
		}
	}
}

func TestFlowSystemFew(t *testing.T) {
	s := NewFlowSystem(testConfig(30), 100, 100, rand.New(rand.NewSource(3)))

	if got := len(s.Few(20)); got != 20 {
		t.Errorf("expected 20 particles, got %d", got)
	}
	if got := len(s.Few(50)); got != 30 {
		t.Errorf("expected subset capped at 30, got %d", got)
	}
	if got := len(s.Few(-1)); got != 0 {
		t.Errorf("expected empty subset, got %d", got)
	}
}

func TestFlowSystemStaysInBounds(t *testing.T) {
	s := NewFlowSystem(testConfig(200), 120, 90, rand.New(rand.NewSource(4)))
	field := BuildBrightnessField(uniformImage(120, 90, 30), 16)

	for frame := 0; frame < 300; frame++ {
		s.Update(field)
		for i, p := range s.Particles() {
			if p.X < 0 || p.X > 120 || p.Y < 0 || p.Y > 90 {
				t.Fatalf("frame %d particle %d escaped: (%f, %f)", frame, i, p.X, p.Y)
			}
			if p.TrailLen() > p.MaxTrail() {
				t.Fatalf("frame %d particle %d: trail %d over capacity", frame, i, p.TrailLen())
			}
		}
	}
}

func TestFlowSystemResize(t *testing.T) {
	s := NewFlowSystem(testConfig(50), 400, 400, rand.New(rand.NewSource(5)))
	s.Resize(100, 100)

	params := s.Params()
	if params.Width != 100 || params.Height != 100 {
		t.Fatalf("expected 100x100 bounds, got %fx%f", params.Width, params.Height)
	}

	s.Update(nil)
	for i, p := range s.Particles() {
		if p.X > 100 || p.Y > 100 {
			t.Errorf("particle %d not wrapped into new bounds: (%f, %f)", i, p.X, p.Y)
		}
	}
}

func TestFlowSystemZeroParticles(t *testing.T) {
	s := NewFlowSystem(testConfig(0), 100, 100, rand.New(rand.NewSource(6)))
	s.Update(nil)
	if s.Len() != 0 {
		t.Errorf("expected no particles, got %d", s.Len())
	}
}
