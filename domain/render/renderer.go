package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Renderer draws prediction labels onto the result raster.
type Renderer struct {
	font       *truetype.Font
	size       float64
	foreground color.Color
	background color.Color
	faces      map[float64]font.Face
}

// NewRenderer parses the embedded Go Regular font. size is the nominal font
// size in points at 72 DPI; it is reduced when a raster is too small to hold it.
func NewRenderer(size float64, fg, bg color.Color) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if size <= 0 {
		size = 180
	}
	if fg == nil {
		fg = color.White
	}
	if bg == nil {
		bg = color.Black
	}
	return &Renderer{font: f, size: size, foreground: fg, background: bg, faces: make(map[float64]font.Face)}, nil
}

// Clear fills dst with the background color.
func (r *Renderer) Clear(dst *image.RGBA) {
	if r == nil || dst == nil {
		return
	}
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(r.background)
	dc.Clear()
}

// Render clears dst and draws label centred horizontally and vertically.
func (r *Renderer) Render(dst *image.RGBA, label string) {
	if r == nil || dst == nil {
		return
	}
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(r.background)
	dc.Clear()
	if label == "" {
		return
	}
	w, h := float64(dc.Width()), float64(dc.Height())
	face := r.face(r.fit(h))
	dc.SetFontFace(face)
	dc.SetColor(r.foreground)
	// Centre the ink box rather than the line box so digits without
	// descenders sit in the middle of the raster.
	b, _ := font.BoundString(face, label)
	cx := (float64(b.Min.X) + float64(b.Max.X)) / 2 / 64
	cy := (float64(b.Min.Y) + float64(b.Max.Y)) / 2 / 64
	dc.DrawString(label, w/2-cx, h/2-cy)
}

// fit caps the font size so a glyph stays inside a raster of height h.
func (r *Renderer) fit(h float64) float64 {
	limit := h * 0.8
	if r.size > limit && limit > 0 {
		return limit
	}
	return r.size
}

func (r *Renderer) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[size] = f
	return f
}
