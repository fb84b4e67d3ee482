package sketch

import (
	"image"
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMapPoint_CornersAcrossScales(t *testing.T) {
	intrinsic := image.Pt(280, 280)
	for _, disp := range []struct{ w, h float64 }{{280, 280}, {140, 140}, {560, 420}, {100, 350}} {
		b := Bounds{Left: 37, Top: 12, Width: disp.w, Height: disp.h}
		tl := MapPoint(Point{X: b.Left, Y: b.Top}, b, intrinsic)
		if !near(tl.X, 0) || !near(tl.Y, 0) {
			t.Fatalf("display %vx%v: top-left mapped to %+v", disp.w, disp.h, tl)
		}
		br := MapPoint(Point{X: b.Left + b.Width, Y: b.Top + b.Height}, b, intrinsic)
		if !near(br.X, 280) || !near(br.Y, 280) {
			t.Fatalf("display %vx%v: bottom-right mapped to %+v", disp.w, disp.h, br)
		}
	}
}

func TestMapPoint_ScalesPerAxis(t *testing.T) {
	b := Bounds{Width: 200, Height: 100}
	p := MapPoint(Point{X: 50, Y: 50}, b, image.Pt(400, 400))
	if !near(p.X, 100) || !near(p.Y, 200) {
		t.Fatalf("expected (100,200) got %+v", p)
	}
}

func TestMapPoint_ZeroBoundsUsesUnitScale(t *testing.T) {
	p := MapPoint(Point{X: 10, Y: 20}, Bounds{Left: 5, Top: 5}, image.Pt(280, 280))
	if !near(p.X, 5) || !near(p.Y, 15) {
		t.Fatalf("expected offset-only mapping, got %+v", p)
	}
}
