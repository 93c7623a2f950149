package output

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
)

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := gg.NewContextForImage(img).EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
