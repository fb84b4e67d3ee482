package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
)

// SampleDigitPNG is a 280x280 drawing of a "7" in the canvas colors
// (white strokes on black).
//
//go:embed sample_digit.png
var SampleDigitPNG []byte

// SampleDigitImage decodes the embedded PNG into an image.Image.
func SampleDigitImage() (image.Image, error) {
	if len(SampleDigitPNG) == 0 {
		return nil, fmt.Errorf("embedded sample_digit.png is empty")
	}
	img, err := png.Decode(bytes.NewReader(SampleDigitPNG))
	if err != nil {
		return nil, err
	}
	return img, nil
}
