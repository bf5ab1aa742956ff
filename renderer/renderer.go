package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/pthm-cable/particleflow/config"
	"github.com/pthm-cable/particleflow/systems"
)

// Scene is the simulation state a frame is rendered from.
type Scene struct {
	Source  image.Image // Viewport-sized source image; nil when none is loaded
	Field   *systems.BrightnessField
	Flow    *systems.FlowSystem
	Trails  *systems.TrailAccumulator
	Depth3D bool
}

// Renderer draws stages into a frame buffer.
type Renderer struct {
	cfg        *config.Config
	background *image.Uniform
	gridLine   *image.Uniform
	greys      [256]*image.Uniform
}

// NewRenderer creates a renderer using the colours and sizes in cfg.
func NewRenderer(cfg *config.Config) *Renderer {
	r := &Renderer{
		cfg:        cfg,
		background: image.NewUniform(cfg.Render.Background.RGBA(255)),
		gridLine:   image.NewUniform(cfg.Render.GridLine.RGBA(255)),
	}
	for i := range r.greys {
		v := uint8(i)
		r.greys[i] = image.NewUniform(color.RGBA{R: v, G: v, B: v, A: 255})
	}
	return r
}

// Render clears frame and draws stage from scene. Rendering never mutates
// simulation state; the trail stage only reads the accumulator.
func (r *Renderer) Render(frame *image.RGBA, stage Stage, scene *Scene) {
	draw.Draw(frame, frame.Bounds(), r.background, image.Point{}, draw.Src)

	switch stage {
	case StageGrid:
		r.drawSource(frame, scene)
		r.drawGrid(frame)
	case StageBrightness:
		r.drawBrightness(frame, scene.Field)
	case StageFewParticles:
		r.drawParticles(frame, scene.Flow.Few(r.cfg.Particles.FewCount), scene.Depth3D)
	case StageAllParticles:
		r.drawParticles(frame, scene.Flow.Particles(), scene.Depth3D)
	case StageAlphaBlend:
		if r.cfg.Render.HistoryTrails {
			r.drawHistory(frame, scene.Flow.Particles(), scene.Depth3D)
		}
		r.drawParticles(frame, scene.Flow.Particles(), scene.Depth3D)
	case StageTrails:
		if scene.Trails != nil {
			scene.Trails.CompositeOnto(frame)
		}
	default:
		r.drawSource(frame, scene)
		r.drawGrid(frame)
	}
}

func (r *Renderer) drawSource(frame *image.RGBA, scene *Scene) {
	if scene.Source == nil {
		return
	}
	sb := scene.Source.Bounds()
	draw.Draw(frame, frame.Bounds(), scene.Source, sb.Min, draw.Over)
}

// drawGrid overlays one-pixel lines every detail pixels.
func (r *Renderer) drawGrid(frame *image.RGBA) {
	detail := r.cfg.Field.Detail
	b := frame.Bounds()
	for x := b.Min.X; x < b.Max.X; x += detail {
		draw.Draw(frame, image.Rect(x, b.Min.Y, x+1, b.Max.Y), r.gridLine, image.Point{}, draw.Src)
	}
	for y := b.Min.Y; y < b.Max.Y; y += detail {
		draw.Draw(frame, image.Rect(b.Min.X, y, b.Max.X, y+1), r.gridLine, image.Point{}, draw.Src)
	}
}

// drawBrightness fills each grid cell with its brightness as grey.
func (r *Renderer) drawBrightness(frame *image.RGBA, field *systems.BrightnessField) {
	if field.Empty() {
		return
	}
	d := field.Detail()
	for gy := 0; gy < field.H; gy++ {
		for gx := 0; gx < field.W; gx++ {
			v := uint8(field.At(gx, gy) * 255)
			cell := image.Rect(gx*d, gy*d, gx*d+d, gy*d+d)
			draw.Draw(frame, cell, r.greys[v], image.Point{}, draw.Src)
		}
	}
}

func (r *Renderer) drawParticles(frame *image.RGBA, particles []systems.Particle, depth3D bool) {
	style := systems.ParticleStyle(r.cfg, depth3D)
	for i := range particles {
		systems.DrawParticle(frame, &particles[i], style)
	}
}

func (r *Renderer) drawHistory(frame *image.RGBA, particles []systems.Particle, depth3D bool) {
	style := systems.HistoryStyle(r.cfg, depth3D)
	for i := range particles {
		systems.DrawHistory(frame, &particles[i], style, r.cfg.Render.HistoryOpacity)
	}
}
