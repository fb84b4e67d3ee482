package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/digit-sketch-go/domain/sketch"
)

// SketchSurface is the drawing surface the presenter drives.
type SketchSurface interface {
	PointerDown(sketch.Point)
	PointerMove(sketch.Point) bool
	PointerUp()
	Raster() *image.RGBA
	Size() image.Point
}

// DisplayBounds reports where the drawing raster is shown on screen and
// takes the widget size after each layout change.
type DisplayBounds interface {
	Bounds() sketch.Bounds
	SetSize(w, h int)
}

// CanvasView shows the drawing raster.
type CanvasView interface {
	UpdateCanvas(img image.Image)
}

// CanvasPresenter adapts widget pointer events to the drawing surface.
// Event coordinates are widget-relative; they are mapped into raster
// pixels using the displayed bounds current at the time of the event.
// Redraws are coalesced and pushed to the view once per Tick.
type CanvasPresenter struct {
	surface SketchSurface
	display DisplayBounds
	view    CanvasView
	logger  *slog.Logger
	dirty   bool
}

func NewCanvasPresenter(surface SketchSurface, display DisplayBounds, view CanvasView, logger *slog.Logger) *CanvasPresenter {
	return &CanvasPresenter{surface: surface, display: display, view: view, logger: logger, dirty: true}
}

func (p *CanvasPresenter) mapPoint(x, y float64) sketch.Point {
	var b sketch.Bounds
	if p.display != nil {
		b = p.display.Bounds()
	}
	return sketch.MapPoint(sketch.Point{X: x, Y: y}, b, p.surface.Size())
}

// Resize records the drawing widget's current size. Later pointer events
// are mapped against it.
func (p *CanvasPresenter) Resize(w, h int) {
	if p == nil || p.display == nil {
		return
	}
	p.display.SetSize(w, h)
	if p.logger != nil {
		p.logger.Debug("canvas resized", "width", w, "height", h)
	}
}

// PointerDown begins a stroke at the widget-relative position (x, y).
func (p *CanvasPresenter) PointerDown(x, y float64) {
	if p == nil || p.surface == nil {
		return
	}
	p.surface.PointerDown(p.mapPoint(x, y))
}

// PointerMove extends the active stroke, if any.
func (p *CanvasPresenter) PointerMove(x, y float64) {
	if p == nil || p.surface == nil {
		return
	}
	if p.surface.PointerMove(p.mapPoint(x, y)) {
		p.dirty = true
	}
}

// PointerUp ends the active stroke. It is bound on the application root so
// releases outside the canvas still end the stroke.
func (p *CanvasPresenter) PointerUp() {
	if p == nil || p.surface == nil {
		return
	}
	p.surface.PointerUp()
}

// Invalidate forces a redraw on the next Tick, e.g. after the raster was
// cleared by someone else.
func (p *CanvasPresenter) Invalidate() {
	if p != nil {
		p.dirty = true
	}
}

// Tick pushes the raster to the view if it changed since the last push.
func (p *CanvasPresenter) Tick() {
	if p == nil || p.surface == nil || p.view == nil || !p.dirty {
		return
	}
	p.dirty = false
	p.view.UpdateCanvas(p.surface.Raster())
}
