package sketch

import "image"

// Point is a position in canvas-pixel space (or client space before mapping).
type Point struct {
	X, Y float64
}

// Bounds is the on-screen rectangle a canvas currently occupies, in the same
// units as the pointer coordinates delivered by the UI toolkit.
type Bounds struct {
	Left, Top     float64
	Width, Height float64
}

// MapPoint converts a client pointer position into canvas-pixel coordinates.
// The displayed size may differ from the intrinsic raster size (the view can
// stretch the canvas), so each axis is scaled by intrinsic/displayed. Bounds
// must be read fresh for every event; layout can change between calls.
func MapPoint(client Point, b Bounds, intrinsic image.Point) Point {
	sx, sy := 1.0, 1.0
	if b.Width > 0 {
		sx = float64(intrinsic.X) / b.Width
	}
	if b.Height > 0 {
		sy = float64(intrinsic.Y) / b.Height
	}
	return Point{
		X: (client.X - b.Left) * sx,
		Y: (client.Y - b.Top) * sy,
	}
}
