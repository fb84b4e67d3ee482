package view

import (
	"image"

	"github.com/soocke/digit-sketch-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandlers receive widget-relative pointer positions from the canvas.
// Resize receives the widget size after every layout change.
type PointerHandlers struct {
	Down   func(x, y float64)
	Move   func(x, y float64)
	Up     func()
	Resize func(w, h int)
}

// SketchCanvas shows the drawing raster and forwards pointer events.
type SketchCanvas interface {
	UpdateCanvas(img image.Image)
	Size() (w, h int)
}

type sketchCanvas struct {
	label     *LabelWidget
	w, h      int
	prevPhoto *Img
}

// NewSketchCanvas grids a w x h drawing label at (row, col) and binds the
// pointer handlers. Press, motion and <Configure> are bound on the label;
// release is bound on the application root so strokes end even when the
// pointer is released outside the canvas. The label has no border or
// padding, so the image edge is the widget edge unless the cell grows.
func NewSketchCanvas(row, col, w, h int, handlers PointerHandlers) SketchCanvas {
	placeholder := image.NewRGBA(image.Rect(0, 0, w, h))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(0), Padx(0), Pady(0))
	Grid(label, Row(row), Column(col), Padx("0.4m"), Pady("0.4m"))
	v := &sketchCanvas{label: label, w: w, h: h, prevPhoto: photo}

	if handlers.Down != nil {
		Bind(label, "<ButtonPress-1>", Command(func(e *Event) {
			x, y := pointerPosition(e)
			handlers.Down(x, y)
		}))
	}
	if handlers.Move != nil {
		Bind(label, "<B1-Motion>", Command(func(e *Event) {
			x, y := pointerPosition(e)
			handlers.Move(x, y)
		}))
	}
	if handlers.Resize != nil {
		Bind(label, "<Configure>", Command(func(e *Event) {
			handlers.Resize(eventSize(e))
		}))
	}
	if handlers.Up != nil {
		Bind(App, "<ButtonRelease-1>", Command(handlers.Up))
	}
	return v
}

// pointerPosition returns the event position relative to the widget that
// received it.
func pointerPosition(e *Event) (float64, float64) {
	if e == nil {
		return 0, 0
	}
	return float64(e.X), float64(e.Y)
}

// eventSize returns the widget size carried by a <Configure> event.
func eventSize(e *Event) (int, int) {
	if e == nil {
		return 0, 0
	}
	return e.Width, e.Height
}

// UpdateCanvas scales img to the displayed size and swaps the label photo.
func (v *sketchCanvas) UpdateCanvas(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(images.ScaleTo(img, v.w, v.h))
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}

// Size reports the displayed size in pixels.
func (v *sketchCanvas) Size() (int, int) { return v.w, v.h }
