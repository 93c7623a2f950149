package output

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for format names other than auto, ppm and png
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects the image encoding
type Format string

const (
	FormatAuto Format = "auto" // Chosen from the output file extension, PPM otherwise
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
)

// ParseFormat validates a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatAuto, FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Resolve turns FormatAuto into a concrete format using the extension of path.
// Standard output and unrecognized extensions get PPM.
func (f Format) Resolve(path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatPPM
}

// ContentType returns the MIME type of the encoded image
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}

// Extension returns the file extension, including the dot
func (f Format) Extension() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".ppm"
}

// Encode writes img in format f. FormatAuto encodes as PPM.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return EncodePNG(w, img)
	case FormatPPM, FormatAuto:
		return EncodePPM(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
