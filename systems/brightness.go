package systems

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// NeutralBrightness is sampled wherever no image data is available.
const NeutralBrightness = 0.5

// BrightnessField is a coarse grid of block-averaged image brightness in [0,1].
// It is rebuilt when the source image changes and is read-only otherwise.
type BrightnessField struct {
	W, H   int
	detail int
	cells  []float64
}

// BuildBrightnessField partitions img into detail x detail blocks and stores the
// mean normalised channel value of each block. A nil image, a non-positive
// detail, or an image smaller than one cell yields an empty field.
func BuildBrightnessField(img image.Image, detail int) *BrightnessField {
	f := &BrightnessField{detail: detail}
	if img == nil || detail <= 0 {
		return f
	}

	b := img.Bounds()
	gw := b.Dx() / detail
	gh := b.Dy() / detail
	if gw <= 0 || gh <= 0 {
		return f
	}

	f.W, f.H = gw, gh
	f.cells = make([]float64, gw*gh)

	// Scratch buffer reused across blocks: three channels per pixel
	samples := make([]float64, 0, detail*detail*3)

	for gy := 0; gy < gh; gy++ {
		for gx := 0; gx < gw; gx++ {
			x0 := b.Min.X + gx*detail
			y0 := b.Min.Y + gy*detail
			x1 := min(x0+detail, b.Max.X)
			y1 := min(y0+detail, b.Max.Y)

			samples = samples[:0]
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					r, g, bl, _ := img.At(x, y).RGBA()
					samples = append(samples,
						float64(r>>8)/255,
						float64(g>>8)/255,
						float64(bl>>8)/255,
					)
				}
			}

			v := NeutralBrightness
			if len(samples) > 0 {
				v = clamp01(stat.Mean(samples, nil))
			}
			f.cells[gy*gw+gx] = v
		}
	}

	return f
}

// Empty reports whether the field has no cells.
func (f *BrightnessField) Empty() bool {
	return f == nil || len(f.cells) == 0
}

// Detail returns the cell side length in source pixels.
func (f *BrightnessField) Detail() int {
	if f == nil {
		return 0
	}
	return f.detail
}

// At returns the value of grid cell (gx, gy). Indices are clamped.
func (f *BrightnessField) At(gx, gy int) float64 {
	if f.Empty() {
		return NeutralBrightness
	}
	gx = clampInt(gx, 0, f.W-1)
	gy = clampInt(gy, 0, f.H-1)
	return f.cells[gy*f.W+gx]
}

// Sample returns the brightness of the cell containing pixel position (x, y).
// Positions outside the grid clamp to the nearest edge cell.
func (f *BrightnessField) Sample(x, y float64) float64 {
	if f.Empty() {
		return NeutralBrightness
	}
	// Truncation toward zero matches integer division for the in-range case;
	// negative positions clamp to column/row 0 below.
	gx := int(x / float64(f.detail))
	gy := int(y / float64(f.detail))
	return f.At(gx, gy)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
