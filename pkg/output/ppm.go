package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidPPM is returned when decoding input that is not a well-formed P3 image
var ErrInvalidPPM = errors.New("invalid PPM image")

// EncodePPM writes img as plain-text PPM (P3): a header with width, height and
// maximum channel value, then one "r g b" line per pixel, top row first
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("failed to write PPM pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}

// DecodePPM reads a plain-text PPM (P3) image with a maximum channel value of 255.
// Text from '#' to the end of a line is a comment.
func DecodePPM(r io.Reader) (*image.RGBA, error) {
	var tokens []string
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		line, _, _ := strings.Cut(lines.Text(), "#")
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("failed to read PPM: %w", err)
	}

	pos := 0
	nextInt := func(what string, limit int) (int, error) {
		if pos >= len(tokens) {
			return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrInvalidPPM, what)
		}
		token := tokens[pos]
		pos++
		value, err := strconv.Atoi(token)
		if err != nil || value < 0 || value > limit {
			return 0, fmt.Errorf("%w: bad %s %q", ErrInvalidPPM, what, token)
		}
		return value, nil
	}

	if len(tokens) == 0 || tokens[0] != "P3" {
		return nil, fmt.Errorf("%w: missing P3 magic number", ErrInvalidPPM)
	}
	pos = 1

	const maxDimension = 1 << 15
	width, err := nextInt("width", maxDimension)
	if err != nil {
		return nil, err
	}
	height, err := nextInt("height", maxDimension)
	if err != nil {
		return nil, err
	}
	maxValue, err := nextInt("max value", 255)
	if err != nil {
		return nil, err
	}
	if maxValue != 255 {
		return nil, fmt.Errorf("%w: only max value 255 is supported, got %d", ErrInvalidPPM, maxValue)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var rgb [3]uint8
			for i := range rgb {
				value, err := nextInt("channel value", maxValue)
				if err != nil {
					return nil, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				rgb[i] = uint8(value)
			}
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	if pos != len(tokens) {
		return nil, fmt.Errorf("%w: %d trailing values", ErrInvalidPPM, len(tokens)-pos)
	}
	return img, nil
}
