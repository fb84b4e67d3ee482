package sketch

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/fogleman/gg"
)

// State enumerates the stroke states of the drawing surface.
type State int

const (
	StateIdle State = iota
	StateDrawing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Style describes how strokes are painted.
type Style struct {
	Width      float64
	Foreground color.Color
	Background color.Color
}

// DefaultStyle is an 8px round white pen on black.
func DefaultStyle() Style {
	return Style{
		Width:      8,
		Foreground: color.White,
		Background: color.Black,
	}
}

// Surface owns the primary drawing raster and its stroke state machine.
// Only the last point of the active stroke is kept; the raster is the sole
// record of what was drawn. Not safe for concurrent use: all calls are
// expected on the UI thread.
type Surface struct {
	raster *image.RGBA
	dc     *gg.Context
	style  Style
	state  State
	last   Point
	logger *slog.Logger
}

// NewSurface allocates a w x h raster filled with the background color.
// Dimensions below 1 are clamped to 1.
func NewSurface(w, h int, style Style, logger *slog.Logger) *Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if style.Width <= 0 {
		style.Width = DefaultStyle().Width
	}
	if style.Foreground == nil {
		style.Foreground = DefaultStyle().Foreground
	}
	if style.Background == nil {
		style.Background = DefaultStyle().Background
	}
	raster := image.NewRGBA(image.Rect(0, 0, w, h))
	s := &Surface{raster: raster, dc: gg.NewContextForRGBA(raster), style: style, logger: logger}
	s.Clear()
	return s
}

// PointerDown starts a new stroke at p (Idle -> Drawing).
func (s *Surface) PointerDown(p Point) {
	if s == nil {
		return
	}
	s.state = StateDrawing
	s.last = p
}

// PointerMove extends the active stroke to p and paints the segment.
// It reports whether the raster changed; moves while idle are ignored.
func (s *Surface) PointerMove(p Point) bool {
	if s == nil || s.state != StateDrawing {
		return false
	}
	s.dc.SetColor(s.style.Foreground)
	s.dc.SetLineWidth(s.style.Width)
	s.dc.SetLineCapRound()
	s.dc.SetLineJoinRound()
	s.dc.MoveTo(s.last.X, s.last.Y)
	s.dc.LineTo(p.X, p.Y)
	s.dc.Stroke()
	s.last = p
	return true
}

// PointerUp ends the active stroke (Drawing -> Idle). The release may come
// from anywhere on screen, not only over the canvas.
func (s *Surface) PointerUp() {
	if s == nil {
		return
	}
	if s.state == StateDrawing && s.logger != nil {
		s.logger.Debug("stroke finished", "x", s.last.X, "y", s.last.Y)
	}
	s.state = StateIdle
}

// Clear resets the raster to the background fill and abandons any stroke.
func (s *Surface) Clear() {
	if s == nil {
		return
	}
	s.dc.ClearPath()
	s.dc.SetColor(s.style.Background)
	s.dc.Clear()
	s.state = StateIdle
}

// State reports the stroke state.
func (s *Surface) State() State {
	if s == nil {
		return StateIdle
	}
	return s.state
}

// Raster returns the live drawing raster. Callers must not mutate it.
func (s *Surface) Raster() *image.RGBA {
	if s == nil {
		return nil
	}
	return s.raster
}

// Size returns the intrinsic raster size.
func (s *Surface) Size() image.Point {
	if s == nil {
		return image.Point{}
	}
	return s.raster.Bounds().Size()
}

// Background returns the fill color used by Clear.
func (s *Surface) Background() color.Color {
	if s == nil {
		return nil
	}
	return s.style.Background
}

// SetStrokeWidth changes the width used by later segments. Non-positive
// widths are ignored.
func (s *Surface) SetStrokeWidth(w float64) {
	if s == nil || w <= 0 {
		return
	}
	s.style.Width = w
}
