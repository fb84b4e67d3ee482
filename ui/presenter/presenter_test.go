package presenter

import (
	"image"
	"testing"
	"time"

	"github.com/soocke/digit-sketch-go/domain/predict"
	"github.com/soocke/digit-sketch-go/domain/sketch"
	"github.com/soocke/digit-sketch-go/ui/model"
)

type mockSurface struct {
	downs, moves []sketch.Point
	ups          int
	drawing      bool
	raster       *image.RGBA
}

func newMockSurface() *mockSurface {
	return &mockSurface{raster: image.NewRGBA(image.Rect(0, 0, 280, 280))}
}

func (s *mockSurface) PointerDown(p sketch.Point) { s.downs = append(s.downs, p); s.drawing = true }
func (s *mockSurface) PointerMove(p sketch.Point) bool {
	if !s.drawing {
		return false
	}
	s.moves = append(s.moves, p)
	return true
}
func (s *mockSurface) PointerUp()          { s.ups++; s.drawing = false }
func (s *mockSurface) Raster() *image.RGBA { return s.raster }
func (s *mockSurface) Size() image.Point   { return s.raster.Bounds().Size() }

type mockCanvasView struct{ updates int }

func (v *mockCanvasView) UpdateCanvas(image.Image) { v.updates++ }

func TestCanvasPresenter_MapsDisplayCoordinates(t *testing.T) {
	surface := newMockSurface()
	view := &mockCanvasView{}
	p := NewCanvasPresenter(surface, model.NewDisplayModel(560, 560), view, nil)

	p.PointerDown(0, 0)
	p.PointerMove(560, 560)
	p.PointerMove(280, 140)
	p.PointerUp()

	if len(surface.downs) != 1 || surface.downs[0] != (sketch.Point{}) {
		t.Fatalf("unexpected down points %v", surface.downs)
	}
	if len(surface.moves) != 2 || surface.moves[0] != (sketch.Point{X: 280, Y: 280}) || surface.moves[1] != (sketch.Point{X: 140, Y: 70}) {
		t.Fatalf("unexpected move points %v", surface.moves)
	}
	if surface.ups != 1 {
		t.Fatalf("expected one pointer up, got %d", surface.ups)
	}
}

func TestCanvasPresenter_UsesWidgetSizeAtEventTime(t *testing.T) {
	surface := newMockSurface()
	p := NewCanvasPresenter(surface, model.NewDisplayModel(280, 280), &mockCanvasView{}, nil)

	p.PointerDown(0, 0)
	p.PointerUp()
	p.Resize(320, 300)
	p.PointerDown(20, 10)
	p.PointerMove(300, 290)
	p.PointerUp()

	if len(surface.downs) != 2 || surface.downs[0] != (sketch.Point{}) || surface.downs[1] != (sketch.Point{}) {
		t.Fatalf("expected image top-left to map to origin before and after resize, got %v", surface.downs)
	}
	if len(surface.moves) != 1 || surface.moves[0] != (sketch.Point{X: 280, Y: 280}) {
		t.Fatalf("unexpected move points after resize %v", surface.moves)
	}
}

func TestCanvasPresenter_CoalescesRedraws(t *testing.T) {
	surface := newMockSurface()
	view := &mockCanvasView{}
	p := NewCanvasPresenter(surface, model.NewDisplayModel(280, 280), view, nil)

	p.Tick() // initial paint
	if view.updates != 1 {
		t.Fatalf("expected initial paint, got %d updates", view.updates)
	}
	p.Tick()
	if view.updates != 1 {
		t.Fatalf("unchanged raster should not be repainted")
	}

	p.PointerMove(10, 10) // idle: ignored
	p.Tick()
	if view.updates != 1 {
		t.Fatalf("move while idle should not repaint")
	}

	p.PointerDown(10, 10)
	p.PointerMove(20, 20)
	p.PointerMove(30, 30)
	p.Tick()
	if view.updates != 2 {
		t.Fatalf("expected one repaint for several moves, got %d", view.updates)
	}

	p.Invalidate()
	p.Tick()
	if view.updates != 3 {
		t.Fatalf("expected repaint after invalidate, got %d", view.updates)
	}
}

type mockController struct {
	state     predict.State
	busy      bool
	status    predict.Status
	activates int
	polls     int
	settle    func()
}

func (c *mockController) Activate() bool {
	c.activates++
	if c.busy {
		return false
	}
	if c.state == predict.StateReadyToPredict {
		c.busy = true
	} else {
		c.state = predict.StateReadyToPredict
	}
	return true
}

func (c *mockController) Poll() bool {
	c.polls++
	if c.settle != nil && c.busy {
		c.settle()
		c.busy = false
		return true
	}
	return false
}

func (c *mockController) Current() predict.State { return c.state }
func (c *mockController) Busy() bool             { return c.busy }
func (c *mockController) Status() predict.Status { return c.status }
func (c *mockController) Result() *image.RGBA    { return image.NewRGBA(image.Rect(0, 0, 1, 1)) }
func (c *mockController) Input() *image.RGBA     { return nil }

type mockPredictView struct {
	button        string
	enabled       bool
	status        string
	failure       bool
	results       int
	inputs        int
	buttonUpdates int
	editable      bool
}

func (v *mockPredictView) SetButton(text string, enabled bool) {
	v.button, v.enabled = text, enabled
	v.buttonUpdates++
}
func (v *mockPredictView) SetStatus(text string, failure bool) { v.status, v.failure = text, failure }
func (v *mockPredictView) UpdateResult(image.Image)           { v.results++ }
func (v *mockPredictView) UpdateInput(image.Image)            { v.inputs++ }
func (v *mockPredictView) SetConfigEditable(b bool)           { v.editable = b }

type mockInvalidator struct{ n int }

func (m *mockInvalidator) Invalidate() { m.n++ }

func TestPredictPresenter_SuccessFlow(t *testing.T) {
	ctrl := &mockController{}
	view := &mockPredictView{}
	sub := &model.SubmissionModel{}
	hist := model.NewHistoryModel()
	canvas := &mockInvalidator{}
	p := NewPredictPresenter(ctrl, view, sub, hist, canvas, nil)

	p.Tick()
	if view.button != "Make Prediction" || !view.enabled {
		t.Fatalf("unexpected initial button %q enabled=%v", view.button, view.enabled)
	}

	p.Toggle()
	if !sub.InFlight() || view.enabled || view.editable {
		t.Fatalf("button and settings should be disabled while in flight")
	}

	ctrl.settle = func() {
		ctrl.state = predict.StateReadyToClear
		ctrl.status = predict.Status{Kind: predict.StatusSuccess, Message: "Prediction: 7", Label: "7", Latency: 40 * time.Millisecond}
		p.OnState(predict.StateReadyToPredict, predict.StateReadyToClear)
		p.OnStatus(ctrl.status)
	}
	p.Tick()
	if view.button != "Clear" || !view.enabled || view.status != "Prediction: 7" || view.failure {
		t.Fatalf("unexpected view after success: %+v", view)
	}
	if sub.InFlight() {
		t.Fatalf("submission should be settled")
	}
	if v := hist.Values(); v.Predictions != 1 || v.LastLabel != "7" {
		t.Fatalf("history not updated: %+v", v)
	}

	p.Toggle() // clear
	p.OnState(predict.StateReadyToClear, predict.StateReadyToPredict)
	p.Tick()
	if view.button != "Make Prediction" {
		t.Fatalf("expected predict button after clear, got %q", view.button)
	}
	if canvas.n != 1 {
		t.Fatalf("expected canvas invalidated once, got %d", canvas.n)
	}
}

func TestPredictPresenter_ToggleIgnoredWhileInFlight(t *testing.T) {
	ctrl := &mockController{}
	view := &mockPredictView{}
	sub := &model.SubmissionModel{}
	p := NewPredictPresenter(ctrl, view, sub, model.NewHistoryModel(), nil, nil)

	p.Toggle()
	if ctrl.activates != 1 || !sub.InFlight() {
		t.Fatalf("expected one activation and an in-flight submission, activates=%d", ctrl.activates)
	}
	p.Toggle()
	p.Toggle()
	if ctrl.activates != 1 {
		t.Fatalf("presses while in flight should not reach the controller, activates=%d", ctrl.activates)
	}

	ctrl.settle = func() { ctrl.state = predict.StateReadyToClear }
	p.Tick()
	p.Toggle()
	if ctrl.activates != 2 || ctrl.state != predict.StateReadyToPredict {
		t.Fatalf("expected clear after settle, activates=%d state=%v", ctrl.activates, ctrl.state)
	}
}

func TestPredictPresenter_FailureStays(t *testing.T) {
	ctrl := &mockController{}
	view := &mockPredictView{}
	hist := model.NewHistoryModel()
	p := NewPredictPresenter(ctrl, view, &model.SubmissionModel{}, hist, nil, nil)

	p.Toggle()
	ctrl.settle = func() {
		ctrl.status = predict.Status{Kind: predict.StatusFailure, Message: "Classifier timed out"}
		p.OnStatus(ctrl.status)
	}
	p.Tick()
	if view.button != "Make Prediction" || !view.enabled {
		t.Fatalf("expected predict button re-enabled, got %q enabled=%v", view.button, view.enabled)
	}
	if view.status != "Classifier timed out" || !view.failure {
		t.Fatalf("expected failure status, got %q failure=%v", view.status, view.failure)
	}
	if v := hist.Values(); v.Failures != 1 || v.Predictions != 0 {
		t.Fatalf("unexpected history %+v", v)
	}
}

func TestPredictPresenter_IdleTicksDoNotRepaint(t *testing.T) {
	ctrl := &mockController{}
	view := &mockPredictView{}
	p := NewPredictPresenter(ctrl, view, &model.SubmissionModel{}, model.NewHistoryModel(), nil, nil)
	p.Tick()
	p.Tick()
	p.Tick()
	if view.buttonUpdates != 1 || view.results != 1 {
		t.Fatalf("expected a single paint, got button=%d results=%d", view.buttonUpdates, view.results)
	}
}

type mockHistoryView struct {
	calls int
	last  model.HistorySnapshot
}

func (v *mockHistoryView) SetHistory(s model.HistorySnapshot) { v.calls++; v.last = s }

func TestHistoryPresenter_PushesOnChange(t *testing.T) {
	hist := model.NewHistoryModel()
	view := &mockHistoryView{}
	p := NewHistoryPresenter(hist, view)
	p.Tick()
	p.Tick()
	if view.calls != 1 {
		t.Fatalf("expected one initial push, got %d", view.calls)
	}
	hist.RecordFailure()
	p.Tick()
	if view.calls != 2 || view.last.Failures != 1 {
		t.Fatalf("expected push after change, got calls=%d last=%+v", view.calls, view.last)
	}
}

func TestLoop_TicksAndReschedules(t *testing.T) {
	scheduled := 0
	surface := newMockSurface()
	cv := &mockCanvasView{}
	l := NewLoop(nil, NewCanvasPresenter(surface, nil, cv, nil), nil, func() { scheduled++ })
	l.Tick()
	l.Tick()
	if scheduled != 2 || cv.updates != 1 {
		t.Fatalf("unexpected loop behaviour: scheduled=%d updates=%d", scheduled, cv.updates)
	}
	var nilLoop *Loop
	nilLoop.Tick()
}
