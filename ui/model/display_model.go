package model

import (
	"github.com/soocke/digit-sketch-go/domain/sketch"
)

// DisplayModel tracks where the drawing image sits inside its widget, in
// widget-relative pixels. The image is drawn at a fixed size and centred in
// the widget, so the widget size reported on each layout change decides the
// offset. A zero image size makes MapPoint fall back to an identity scale.
// No synchronization needed: updates occur on the UI thread.
type DisplayModel struct {
	imageW, imageH   int
	widgetW, widgetH int
}

// NewDisplayModel records a w x h image shown in a widget of the same size.
func NewDisplayModel(w, h int) *DisplayModel {
	m := &DisplayModel{}
	if w > 0 && h > 0 {
		m.imageW, m.imageH = w, h
	}
	m.SetSize(w, h)
	return m
}

// SetSize records the widget's current size. Non-positive sizes are ignored.
func (m *DisplayModel) SetSize(w, h int) {
	if m == nil || w <= 0 || h <= 0 {
		return
	}
	m.widgetW, m.widgetH = w, h
}

// Bounds returns the image rectangle within the widget (may be zero).
func (m *DisplayModel) Bounds() sketch.Bounds {
	if m == nil || m.imageW <= 0 || m.imageH <= 0 {
		return sketch.Bounds{}
	}
	return sketch.Bounds{
		Left:   float64(m.widgetW-m.imageW) / 2,
		Top:    float64(m.widgetH-m.imageH) / 2,
		Width:  float64(m.imageW),
		Height: float64(m.imageH),
	}
}
