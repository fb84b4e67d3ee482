package preprocess

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// TargetSize is the side length of the classifier input raster.
const TargetSize = 28

// Luminosity weights for grayscale reduction. Fixed by the classifier's
// training data; not configurable.
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114
)

// ErrEmptySource is returned when the source raster has no pixels.
var ErrEmptySource = errors.New("preprocess: empty source raster")

// Downsample resamples src onto a new TargetSize x TargetSize raster using
// bilinear interpolation. The result is deterministic for a given source.
func Downsample(src image.Image) (*image.RGBA, error) {
	if src == nil {
		return nil, ErrEmptySource
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptySource
	}
	dst := image.NewRGBA(image.Rect(0, 0, TargetSize, TargetSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// Grayscale replaces R, G and B of every pixel with the luminosity of the
// pixel, leaving alpha untouched. Applying it twice is a no-op.
func Grayscale(img *image.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			g := luminosity(row[i], row[i+1], row[i+2])
			row[i], row[i+1], row[i+2] = g, g, g
		}
	}
}

// luminosity rounds half to even and clamps, matching how a browser
// Uint8ClampedArray stores a fractional channel value.
func luminosity(r, g, b uint8) uint8 {
	v := weightR*float64(r) + weightG*float64(g) + weightB*float64(b)
	v = math.RoundToEven(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Result is a preprocessed drawing ready for upload.
type Result struct {
	Image   *image.RGBA
	DataURL string
}

// Process downsamples src, reduces it to grayscale and encodes it as a PNG
// data URL.
func Process(src image.Image) (Result, error) {
	img, err := Downsample(src)
	if err != nil {
		return Result{}, err
	}
	Grayscale(img)
	url, err := EncodeDataURL(img)
	if err != nil {
		return Result{}, fmt.Errorf("encode data url: %w", err)
	}
	return Result{Image: img, DataURL: url}, nil
}
