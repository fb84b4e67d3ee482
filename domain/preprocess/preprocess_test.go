package preprocess

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"
)

func noisy(w, h int, seed int64) *image.RGBA {
	r := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(r.Intn(256))
		img.Pix[i+1] = uint8(r.Intn(256))
		img.Pix[i+2] = uint8(r.Intn(256))
		img.Pix[i+3] = 0xFF
	}
	return img
}

func assertGray(t *testing.T, img *image.RGBA) {
	t.Helper()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != img.Pix[i+1] || img.Pix[i+1] != img.Pix[i+2] {
			t.Fatalf("pixel %d not gray: %v", i/4, img.Pix[i:i+4])
		}
	}
}

func TestDownsample_AlwaysTargetSize(t *testing.T) {
	sizes := []image.Point{{1, 1}, {27, 29}, {28, 28}, {280, 280}, {640, 120}, {3, 500}}
	for _, sz := range sizes {
		out, err := Downsample(noisy(sz.X, sz.Y, 1))
		if err != nil {
			t.Fatalf("%v: unexpected error %v", sz, err)
		}
		if out.Bounds() != image.Rect(0, 0, TargetSize, TargetSize) {
			t.Fatalf("%v: got bounds %v", sz, out.Bounds())
		}
	}
}

func TestDownsample_Deterministic(t *testing.T) {
	src := noisy(300, 200, 7)
	a, _ := Downsample(src)
	b, _ := Downsample(src)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("downsample not deterministic")
	}
}

func TestDownsample_EmptySource(t *testing.T) {
	if _, err := Downsample(nil); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("nil source: expected ErrEmptySource, got %v", err)
	}
	if _, err := Downsample(image.NewRGBA(image.Rect(0, 0, 0, 10))); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("zero width: expected ErrEmptySource, got %v", err)
	}
}

func TestGrayscale_InvariantAndIdempotent(t *testing.T) {
	img := noisy(28, 28, 42)
	alpha := make([]uint8, 0, 28*28)
	for i := 3; i < len(img.Pix); i += 4 {
		alpha = append(alpha, img.Pix[i])
	}
	Grayscale(img)
	assertGray(t, img)
	once := append([]uint8(nil), img.Pix...)
	Grayscale(img)
	if !bytes.Equal(once, img.Pix) {
		t.Fatalf("second grayscale pass changed pixels")
	}
	for i, j := 3, 0; i < len(img.Pix); i, j = i+4, j+1 {
		if img.Pix[i] != alpha[j] {
			t.Fatalf("alpha changed at pixel %d", j)
		}
	}
}

func TestGrayscale_Weights(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(2, 0, color.RGBA{B: 255, A: 255})
	Grayscale(img)
	// 0.299*255=76.245, 0.587*255=149.685, 0.114*255=29.07
	want := []uint8{76, 150, 29}
	for x, w := range want {
		if got := img.RGBAAt(x, 0).R; got != w {
			t.Fatalf("pixel %d: want %d got %d", x, w, got)
		}
	}
}

func TestProcess_ProducesGrayPNGDataURL(t *testing.T) {
	res, err := Process(noisy(280, 280, 3))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	assertGray(t, res.Image)
	mime, data, err := DecodeDataURL(res.DataURL)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("unexpected mime %q", mime)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	if decoded.Bounds().Dx() != TargetSize || decoded.Bounds().Dy() != TargetSize {
		t.Fatalf("unexpected decoded bounds %v", decoded.Bounds())
	}
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	for _, s := range []string{"", "hello", "data:image/png,abc", "data:image/png;base64,"} {
		if _, _, err := DecodeDataURL(s); !errors.Is(err, ErrInvalidDataURL) {
			t.Fatalf("%q: expected ErrInvalidDataURL, got %v", s, err)
		}
	}
	if _, _, err := DecodeDataURL("data:image/png;base64,!!!"); err == nil {
		t.Fatalf("expected base64 error")
	}
}
