package render

import (
	"image"
	"image/color"
	"testing"
)

// inkBox returns the bounding box of pixels brighter than the black background.
func inkBox(img *image.RGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).R > 127 {
				found = true
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), found
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(180, color.White, color.Black)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_LabelIsCentred(t *testing.T) {
	r := newTestRenderer(t)
	dst := image.NewRGBA(image.Rect(0, 0, 280, 280))
	r.Render(dst, "7")
	box, ok := inkBox(dst)
	if !ok {
		t.Fatalf("no label pixels rendered")
	}
	if box.Dy() < 60 {
		t.Fatalf("label too small for a large font: %v", box)
	}
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	if cx < 135 || cx > 145 || cy < 135 || cy > 145 {
		t.Fatalf("label not centred: box=%v centre=(%d,%d)", box, cx, cy)
	}
}

func TestRender_ReplacesPreviousLabel(t *testing.T) {
	r := newTestRenderer(t)
	dst := image.NewRGBA(image.Rect(0, 0, 280, 280))
	r.Render(dst, "1")
	first, _ := inkBox(dst)
	r.Render(dst, "0")
	second, _ := inkBox(dst)
	if first == second {
		t.Fatalf("expected different ink boxes for different labels")
	}
}

func TestRender_SmallRasterFits(t *testing.T) {
	r := newTestRenderer(t)
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	r.Render(dst, "8")
	box, ok := inkBox(dst)
	if !ok {
		t.Fatalf("no label pixels rendered")
	}
	if box.Min.Y <= 0 || box.Max.Y >= 60 {
		t.Fatalf("label clipped on small raster: %v", box)
	}
}

func TestClear_FillsBackground(t *testing.T) {
	r := newTestRenderer(t)
	dst := image.NewRGBA(image.Rect(0, 0, 50, 50))
	r.Render(dst, "3")
	r.Clear(dst)
	if _, ok := inkBox(dst); ok {
		t.Fatalf("clear left label pixels")
	}
	if dst.RGBAAt(0, 0).A != 0xFF {
		t.Fatalf("background should be opaque")
	}
}
