package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Camera rays per pixel
	TotalSamples    int           // Total number of camera rays
	RaysTraced      int           // Camera rays plus every scattered bounce
	Absorbed        int           // Paths ended by a material absorbing the ray
	DepthLimited    int           // Paths truncated at the bounce limit
	MaxDepthReached int           // Deepest bounce observed
	Elapsed         time.Duration // Wall-clock render time
}

// AverageBounces returns the mean number of rays traced per camera sample
func (s RenderStats) AverageBounces() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.RaysTraced) / float64(s.TotalSamples)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(pixels)
}
