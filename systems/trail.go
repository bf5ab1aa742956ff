package systems

import (
	"image"

	"golang.org/x/image/draw"
)

// TrailAccumulator is a persistent premultiplied overlay that particles are
// stamped onto each frame and that fades exponentially between stamps.
type TrailAccumulator struct {
	img *image.RGBA

	// exact holds the unquantised value of every byte in img, so repeated
	// decays follow (1 - fade)^n instead of compounding 8-bit truncation.
	exact []float32
}

// NewTrailAccumulator creates a fully transparent buffer of the given size.
func NewTrailAccumulator(width, height int) *TrailAccumulator {
	t := &TrailAccumulator{}
	t.Resize(width, height)
	return t
}

// Decay multiplies every pixel by (1 - fade). Because the buffer is
// premultiplied this fades alpha without shifting hue; values never increase
// and reach zero.
func (t *TrailAccumulator) Decay(fade float64) {
	keep := float32(1 - clamp01(fade))
	if keep >= 1 {
		return
	}
	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		px, ex := pix[i:i+4:i+4], t.exact[i:i+4:i+4]
		// Pixels changed since the last decay (stamps) restart from their bytes
		if px[0] != uint8(ex[0]) || px[1] != uint8(ex[1]) || px[2] != uint8(ex[2]) || px[3] != uint8(ex[3]) {
			for j := range px {
				ex[j] = float32(px[j])
			}
		}
		for j := range px {
			ex[j] *= keep
			px[j] = uint8(ex[j])
		}
	}
}

// Stamp composites the particle's current position onto the buffer.
func (t *TrailAccumulator) Stamp(p *Particle, style DiscStyle) {
	DrawParticle(t.img, p, style)
}

// StampAll stamps every particle in order.
func (t *TrailAccumulator) StampAll(particles []Particle, style DiscStyle) {
	for i := range particles {
		DrawParticle(t.img, &particles[i], style)
	}
}

// CompositeOnto blends the buffer over frame.
func (t *TrailAccumulator) CompositeOnto(frame *image.RGBA) {
	draw.Draw(frame, frame.Bounds(), t.img, image.Point{}, draw.Over)
}

// Clear makes the whole buffer fully transparent.
func (t *TrailAccumulator) Clear() {
	clear(t.img.Pix)
	clear(t.exact)
}

// Resize reallocates the buffer, discarding its contents.
func (t *TrailAccumulator) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	t.exact = make([]float32, len(t.img.Pix))
}

// Image returns the underlying buffer.
func (t *TrailAccumulator) Image() *image.RGBA {
	return t.img
}

// Bounds returns the buffer extent.
func (t *TrailAccumulator) Bounds() image.Rectangle {
	return t.img.Bounds()
}

// Coverage returns the fraction of pixels with non-zero alpha.
func (t *TrailAccumulator) Coverage() float64 {
	n := len(t.img.Pix) / 4
	if n == 0 {
		return 0
	}
	covered := 0
	for i := 3; i < len(t.img.Pix); i += 4 {
		if t.img.Pix[i] != 0 {
			covered++
		}
	}
	return float64(covered) / float64(n)
}
