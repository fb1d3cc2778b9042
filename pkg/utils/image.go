package utils

import (
	"bytes"
	"image"
	"image/png"
	"strings"
)

// SaveImage encodes img as a PNG and writes it to filename, adding
// the .png extension when it is missing.
func SaveImage(filename string, img image.Image) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return err
	}
	return WriteFile(filename, b.Bytes())
}
