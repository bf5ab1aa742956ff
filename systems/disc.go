package systems

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/pthm-cable/particleflow/config"
)

// bezierCircle is the control point distance for a quarter-circle cubic.
const bezierCircle = 0.5522847498

// DiscStyle describes how a particle is stamped as a disc.
type DiscStyle struct {
	Radius  int
	Color   config.RGB
	Opacity float64 // Alpha multiplier on the 0-255 scale

	// Pseudo-3-D: two discs offset horizontally by DepthOffset*depth
	Depth3D      bool
	Red, Blue    config.RGB
	DepthOpacity float64
	DepthOffset  float64
}

// ParticleStyle returns the style used to draw live particles.
func ParticleStyle(cfg *config.Config, depth3D bool) DiscStyle {
	return DiscStyle{
		Radius:       cfg.Particles.Size,
		Color:        cfg.Render.Particle,
		Opacity:      cfg.Render.ParticleOpacity,
		Depth3D:      depth3D,
		Red:          cfg.Render.Red,
		Blue:         cfg.Render.Blue,
		DepthOpacity: cfg.Depth.ParticleOpacity,
		DepthOffset:  cfg.Depth.Offset,
	}
}

// StampStyle returns the style used to stamp particles into the trail buffer.
func StampStyle(cfg *config.Config, depth3D bool) DiscStyle {
	s := ParticleStyle(cfg, depth3D)
	s.Opacity = cfg.Render.StampOpacity
	s.DepthOpacity = cfg.Depth.StampOpacity
	return s
}

// HistoryStyle returns the style used for per-particle history trails.
func HistoryStyle(cfg *config.Config, depth3D bool) DiscStyle {
	s := ParticleStyle(cfg, depth3D)
	s.DepthOpacity = cfg.Depth.HistoryOpacity
	return s
}

// DrawParticle composites p onto dst at its rounded position.
func DrawParticle(dst *image.RGBA, p *Particle, style DiscStyle) {
	if p.Alpha <= 0 {
		return
	}
	drawPoint(dst, p.X, p.Y, style.Radius, p.Alpha, p.Depth, style)
}

// DrawHistory composites the particle's remembered states onto dst, older
// entries smaller and fainter. historyScale scales every entry's alpha.
func DrawHistory(dst *image.RGBA, p *Particle, style DiscStyle, historyScale float64) {
	trail := p.Trail()
	if len(trail) < 2 {
		return
	}
	n := float64(len(trail))
	for i, pt := range trail {
		progress := float64(i+1) / n
		alpha := pt.Alpha * progress * historyScale
		if alpha <= 0.01 {
			continue
		}
		radius := max(1, int(float64(style.Radius)*(0.5+progress*0.5)))
		drawPoint(dst, pt.X, pt.Y, radius, alpha, pt.Depth*progress, style)
	}
}

func drawPoint(dst *image.RGBA, x, y float64, radius int, alpha, depth float64, style DiscStyle) {
	cx := int(math.Round(x))
	cy := int(math.Round(y))

	if !style.Depth3D {
		stampDisc(dst, cx, cy, radius, style.Color, opacityByte(alpha, style.Opacity))
		return
	}

	offset := int(style.DepthOffset * depth)
	a := opacityByte(alpha, style.DepthOpacity)
	stampDisc(dst, cx-offset, cy, radius, style.Red, a)
	stampDisc(dst, cx+offset, cy, radius, style.Blue, a)
}

func opacityByte(alpha, scale float64) uint8 {
	return uint8(max(0, min(255, int(alpha*scale))))
}

// stampDisc composites a disc centred on (cx, cy), clipped to dst.
func stampDisc(dst *image.RGBA, cx, cy, radius int, c config.RGB, a uint8) {
	if a == 0 {
		return
	}
	mask := discMask(radius)
	r := mask.Bounds().Add(image.Pt(cx-radius, cy-radius))
	src := image.NewUniform(color.NRGBA{R: c[0], G: c[1], B: c[2], A: a})
	draw.DrawMask(dst, r, src, image.Point{}, mask, image.Point{}, draw.Over)
}

var (
	discMu    sync.Mutex
	discMasks = map[int]*image.Alpha{}
)

// discMask returns an anti-aliased coverage mask of a disc of the given
// radius inscribed in a 2r x 2r square. Masks are cached per radius.
func discMask(radius int) *image.Alpha {
	radius = max(radius, 1)

	discMu.Lock()
	defer discMu.Unlock()
	if m, ok := discMasks[radius]; ok {
		return m
	}

	d := 2 * radius
	r := float32(radius)
	k := r * bezierCircle

	z := vector.NewRasterizer(d, d)
	z.MoveTo(r+r, r)
	z.CubeTo(r+r, r+k, r+k, r+r, r, r+r)
	z.CubeTo(r-k, r+r, 0, r+k, 0, r)
	z.CubeTo(0, r-k, r-k, 0, r, 0)
	z.CubeTo(r+k, 0, r+r, r-k, r+r, r)
	z.ClosePath()

	m := image.NewAlpha(image.Rect(0, 0, d, d))
	z.Draw(m, m.Bounds(), image.Opaque, image.Point{})
	discMasks[radius] = m
	return m
}
