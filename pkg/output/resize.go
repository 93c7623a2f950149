package output

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// Scale resamples img by factor with bilinear filtering. A factor of 1 returns img unchanged.
func Scale(img image.Image, factor float64) (image.Image, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("scale factor must be positive, got %g", factor)
	}
	if factor == 1 {
		return img, nil
	}

	bounds := img.Bounds()
	width := max(1, uint(float64(bounds.Dx())*factor+0.5))
	height := max(1, uint(float64(bounds.Dy())*factor+0.5))
	return resize.Resize(width, height, img, resize.Bilinear), nil
}
