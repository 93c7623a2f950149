package output

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
)

// LoadImage loads a PPM (P3), PNG or JPEG image, detecting the format from the file header
func LoadImage(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	if magic, err := reader.Peek(2); err == nil && string(magic) == "P3" {
		img, err := DecodePPM(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
