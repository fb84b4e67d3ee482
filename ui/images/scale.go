package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleTo resizes src to exactly w x h with nearest-neighbour sampling so
// that pixel edges stay crisp when a small raster is magnified. If src
// already has that size it is returned unchanged.
func ScaleTo(src image.Image, w, h int) image.Image {
	if src == nil {
		return nil
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	return resize.Resize(uint(w), uint(h), src, resize.NearestNeighbor)
}

// ScaleToFit shrinks src so that it fits within maxW x maxH preserving
// aspect ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	return resize.Thumbnail(uint(maxW), uint(maxH), src, resize.NearestNeighbor)
}
