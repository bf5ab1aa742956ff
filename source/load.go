package source

import (
	"fmt"
	"image"
	"os"

	// Decoders register themselves with image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pthm-cable/particleflow/config"
)

// Load decodes the image at path. The format is detected from content.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("decoding image %s: empty %s image", path, format)
	}
	return img, nil
}

// FitViewport picks the viewport size for a srcW x srcH image. Images larger
// than the maximum extents are scaled down along their longer side keeping
// aspect; smaller images are raised to the minimum extents. The result is
// always within the configured extents.
func FitViewport(srcW, srcH int, screen config.ScreenConfig) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return screen.Width, screen.Height
	}

	w, h := srcW, srcH
	if srcW > screen.MaxWidth || srcH > screen.MaxHeight {
		aspect := float64(srcW) / float64(srcH)
		if aspect > 1 {
			w = screen.MaxWidth
			h = int(float64(screen.MaxWidth) / aspect)
		} else {
			h = screen.MaxHeight
			w = int(float64(screen.MaxHeight) * aspect)
		}
	} else {
		w = max(screen.MinWidth, srcW)
		h = max(screen.MinHeight, srcH)
	}

	w = max(screen.MinWidth, min(screen.MaxWidth, w))
	h = max(screen.MinHeight, min(screen.MaxHeight, h))
	return w, h
}

// Resample scales img to exactly w x h with Catmull-Rom filtering. Alpha is
// discarded: transparent regions come out black and the result is opaque.
func Resample(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if img == nil || dst.Bounds().Empty() {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}
