package renderer

import (
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"github.com/pthm-cable/particleflow/config"
	"github.com/pthm-cable/particleflow/systems"
)

func uniformSource(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
	}
	return img
}

func testScene(cfg *config.Config, w, h int, v uint8) *Scene {
	src := uniformSource(w, h, v)
	return &Scene{
		Source: src,
		Field:  systems.BuildBrightnessField(src, cfg.Field.Detail),
		Flow:   systems.NewFlowSystem(cfg, w, h, rand.New(rand.NewSource(1))),
		Trails: systems.NewTrailAccumulator(w, h),
	}
}

func TestStageCycle(t *testing.T) {
	s := StageGrid
	for i := 0; i < int(StageCount); i++ {
		s = s.Next()
	}
	if s != StageGrid {
		t.Errorf("expected cycle to return to %v, got %v", StageGrid, s)
	}

	if got := StageTrails.Next(); got != StageGrid {
		t.Errorf("expected trails to wrap to grid, got %v", got)
	}
	if got := StageBrightness.Number(); got != 2 {
		t.Errorf("expected brightness to be stage 2, got %d", got)
	}
}

func TestStageLabels(t *testing.T) {
	want := []string{"Original + Grid", "Brightness", "Few Particles", "All Particles", "Alpha Blend", "Trails"}
	for i, label := range want {
		if got := Stage(i).String(); got != label {
			t.Errorf("stage %d: expected %q, got %q", i, label, got)
		}
	}
	if got := Stage(42).String(); got != "Stage(42)" {
		t.Errorf("expected fallback label, got %q", got)
	}
	if !StageTrails.NeedsTrails() || StageAlphaBlend.NeedsTrails() {
		t.Error("only the trails stage should need the accumulator")
	}
}

func TestStatusText(t *testing.T) {
	if got := StatusText(StageFewParticles, false, 600, 800); got != "S3/6: Few Particles" {
		t.Errorf("unexpected compact status %q", got)
	}
	if got := StatusText(StageTrails, true, 600, 800); got != "S6/6: Trails | 3D: ON" {
		t.Errorf("unexpected compact 3D status %q", got)
	}
	got := StatusText(StageGrid, false, 1024, 800)
	if !strings.HasPrefix(got, "Step 1/6: Original + Grid") || !strings.HasSuffix(got, "SPACE/R/L/3/C/ESC") {
		t.Errorf("unexpected wide status %q", got)
	}
}

func TestRenderGridStage(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 0
	scene := testScene(cfg, 64, 64, 200)
	frame := image.NewRGBA(image.Rect(0, 0, 64, 64))

	NewRenderer(cfg).Render(frame, StageGrid, scene)

	line := color.RGBA{100, 100, 100, 255}
	for _, pt := range []image.Point{{0, 5}, {16, 5}, {5, 32}, {48, 48}} {
		if got := frame.RGBAAt(pt.X, pt.Y); got != line {
			t.Errorf("expected grid line at %v, got %v", pt, got)
		}
	}
	if got := frame.RGBAAt(5, 5); got != (color.RGBA{200, 200, 200, 255}) {
		t.Errorf("expected source pixel inside a cell, got %v", got)
	}
}

func TestRenderBrightnessStage(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 0
	scene := testScene(cfg, 32, 32, 255)
	frame := image.NewRGBA(image.Rect(0, 0, 32, 32))

	NewRenderer(cfg).Render(frame, StageBrightness, scene)

	for _, pt := range []image.Point{{0, 0}, {15, 15}, {31, 31}} {
		if got := frame.RGBAAt(pt.X, pt.Y); got != (color.RGBA{255, 255, 255, 255}) {
			t.Errorf("expected white cell at %v, got %v", pt, got)
		}
	}
}

func TestRenderBrightnessGreyLevels(t *testing.T) {
	cfg := config.Default()
	src := image.NewRGBA(image.Rect(0, 0, 64, 16))
	for x := 0; x < 64; x++ {
		v := uint8(x / 16 * 60)
		for y := 0; y < 16; y++ {
			src.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	scene := &Scene{Field: systems.BuildBrightnessField(src, cfg.Field.Detail)}
	frame := image.NewRGBA(image.Rect(0, 0, 64, 16))

	NewRenderer(cfg).Render(frame, StageBrightness, scene)

	for gx := 0; gx < 4; gx++ {
		v := uint8(scene.Field.At(gx, 0) * 255)
		if got := frame.RGBAAt(gx*16+8, 8); got != (color.RGBA{v, v, v, 255}) {
			t.Errorf("cell %d: got %v, want grey %d", gx, got, v)
		}
	}
}

func TestRenderBrightnessReusesCellColours(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 0
	scene := testScene(cfg, 600, 800, 128)
	frame := image.NewRGBA(image.Rect(0, 0, 600, 800))
	r := NewRenderer(cfg)

	cells := scene.Field.W * scene.Field.H
	allocs := testing.AllocsPerRun(5, func() {
		r.Render(frame, StageBrightness, scene)
	})
	if allocs >= 10 {
		t.Errorf("render allocated %.0f times for %d cells", allocs, cells)
	}
}

func TestRenderBrightnessEmptyField(t *testing.T) {
	cfg := config.Default()
	scene := &Scene{Field: systems.BuildBrightnessField(nil, cfg.Field.Detail)}
	frame := image.NewRGBA(image.Rect(0, 0, 16, 16))

	NewRenderer(cfg).Render(frame, StageBrightness, scene)

	if got := frame.RGBAAt(8, 8); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("expected background only, got %v", got)
	}
}

func TestRenderFewParticlesStage(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 40
	cfg.Particles.FewCount = 1
	scene := testScene(cfg, 100, 100, 0)
	particles := scene.Flow.Particles()
	for i := range particles {
		particles[i].X, particles[i].Y, particles[i].Alpha = 80, 80, 1
	}
	particles[0].X, particles[0].Y = 20, 20

	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	NewRenderer(cfg).Render(frame, StageFewParticles, scene)

	if got := frame.RGBAAt(20, 20); got.R == 0 {
		t.Errorf("expected first particle drawn, got %v", got)
	}
	if got := frame.RGBAAt(80, 80); got.R != 0 {
		t.Errorf("expected particles beyond the subset to be skipped, got %v", got)
	}

	NewRenderer(cfg).Render(frame, StageAllParticles, scene)
	if got := frame.RGBAAt(80, 80); got.R == 0 {
		t.Errorf("expected all particles drawn, got %v", got)
	}
}

func TestRenderAlphaBlendStage(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 1
	scene := testScene(cfg, 50, 50, 0)
	p := &scene.Flow.Particles()[0]
	p.X, p.Y = 25, 25

	frame := image.NewRGBA(image.Rect(0, 0, 50, 50))
	r := NewRenderer(cfg)

	p.Alpha = 1
	r.Render(frame, StageAlphaBlend, scene)
	bright := frame.RGBAAt(25, 25).R

	p.Alpha = 0.4
	r.Render(frame, StageAlphaBlend, scene)
	dim := frame.RGBAAt(25, 25).R

	if dim >= bright {
		t.Errorf("expected lower alpha to draw dimmer: %d >= %d", dim, bright)
	}
}

func TestRenderTrailsStage(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 1
	scene := testScene(cfg, 50, 50, 0)
	p := &scene.Flow.Particles()[0]
	p.X, p.Y, p.Alpha = 10, 10, 1
	scene.Trails.Stamp(p, systems.StampStyle(cfg, false))

	// Move the live particle away; the trails stage shows only the buffer
	p.X, p.Y = 40, 40
	frame := image.NewRGBA(image.Rect(0, 0, 50, 50))
	NewRenderer(cfg).Render(frame, StageTrails, scene)

	if got := frame.RGBAAt(10, 10); got.R == 0 {
		t.Errorf("expected trail stamp composited, got %v", got)
	}
	if got := frame.RGBAAt(40, 40); got.R != 0 {
		t.Errorf("expected live particle not drawn in trails stage, got %v", got)
	}
}

func TestRenderDoesNotMutateState(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count = 50
	scene := testScene(cfg, 100, 100, 128)
	before := make([]systems.Particle, scene.Flow.Len())
	copy(before, scene.Flow.Particles())
	trailBefore := append([]uint8(nil), scene.Trails.Image().Pix...)

	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	r := NewRenderer(cfg)
	for s := StageGrid; s < StageCount; s++ {
		r.Render(frame, s, scene)
	}

	for i, p := range scene.Flow.Particles() {
		if p.X != before[i].X || p.Y != before[i].Y || p.Alpha != before[i].Alpha {
			t.Fatalf("particle %d changed during render", i)
		}
	}
	for i, v := range scene.Trails.Image().Pix {
		if v != trailBefore[i] {
			t.Fatalf("trail buffer changed during render at byte %d", i)
		}
	}
}
