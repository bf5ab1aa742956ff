// Package source produces and prepares the images the brightness field is
// built from.
package source

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/pthm-cable/particleflow/config"
)

// Spiral generates the default greyscale pattern: a spiral wave around the
// viewport centre blended with a slow sine/cosine lattice.
func Spiral(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, max(w, 0), max(h, 0)))
	cx, cy := w/2, h/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			dist := math.Sqrt(dx*dx + dy*dy)
			angle := math.Atan2(dy, dx)

			wave1 := math.Sin(dist*0.02+angle*3)*0.5 + 0.5
			wave2 := math.Sin(float64(x)*0.01)*math.Cos(float64(y)*0.01)*0.5 + 0.5

			v := int((wave1*0.7 + wave2*0.3) * 255)
			img.SetGray(x, y, color.Gray{Y: uint8(max(0, min(255, v)))})
		}
	}
	return img
}

// Perlin generates a greyscale noise field. Equal seeds give equal images.
func Perlin(w, h int, cfg config.PatternConfig, seed int64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, max(w, 0), max(h, 0)))
	noise := perlin.NewPerlin(cfg.PerlinAlpha, cfg.PerlinBeta, cfg.PerlinOctaves, seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := noise.Noise2D(float64(x)*cfg.PerlinScale, float64(y)*cfg.PerlinScale)
			v := int((n*0.5 + 0.5) * 255)
			img.SetGray(x, y, color.Gray{Y: uint8(max(0, min(255, v)))})
		}
	}
	return img
}

// Default returns the configured procedural pattern for a w x h viewport.
func Default(w, h int, cfg config.PatternConfig, seed int64) image.Image {
	if cfg.Kind == config.PatternPerlin {
		return Perlin(w, h, cfg, seed)
	}
	return Spiral(w, h)
}
