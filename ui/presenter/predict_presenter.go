package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/digit-sketch-go/domain/predict"
	"github.com/soocke/digit-sketch-go/ui/model"
)

// PredictController is the subset of predict.Controller the presenter uses.
type PredictController interface {
	Activate() bool
	Poll() bool
	Current() predict.State
	Busy() bool
	Status() predict.Status
	Result() *image.RGBA
	Input() *image.RGBA
}

// PredictView shows the toggle control, status line and result rasters.
type PredictView interface {
	SetButton(text string, enabled bool)
	SetStatus(text string, failure bool)
	UpdateResult(img image.Image)
	UpdateInput(img image.Image)
	SetConfigEditable(enabled bool)
}

// Invalidator is notified when the drawing raster was cleared.
type Invalidator interface{ Invalidate() }

// PredictPresenter reflects controller state into the view. Controller
// listeners queue changes; Tick flushes them on the UI thread.
type PredictPresenter struct {
	ctrl       PredictController
	view       PredictView
	submission *model.SubmissionModel
	history    *model.HistoryModel
	canvas     Invalidator
	logger     *slog.Logger

	pending []predict.Status
	dirty   bool
}

func NewPredictPresenter(ctrl PredictController, view PredictView, submission *model.SubmissionModel, history *model.HistoryModel, canvas Invalidator, logger *slog.Logger) *PredictPresenter {
	return &PredictPresenter{ctrl: ctrl, view: view, submission: submission, history: history, canvas: canvas, logger: logger, dirty: true}
}

// OnStatus queues a status change from the controller listener.
func (p *PredictPresenter) OnStatus(s predict.Status) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, s)
}

// OnState marks the view stale and, when the controller returned to
// ReadyToPredict, asks the canvas to redraw its cleared raster.
func (p *PredictPresenter) OnState(prev, next predict.State) {
	if p == nil {
		return
	}
	p.dirty = true
	if next == predict.StateReadyToPredict && p.canvas != nil {
		p.canvas.Invalidate()
	}
}

// Toggle forwards a button press to the controller and refreshes at once so
// the button is disabled while the upload is in flight. Presses queued by Tk
// before the button was disabled are dropped here.
func (p *PredictPresenter) Toggle() {
	if p == nil || p.ctrl == nil {
		return
	}
	if p.submission.InFlight() {
		if p.logger != nil {
			p.logger.Debug("toggle ignored, prediction in flight")
		}
		return
	}
	if p.ctrl.Activate() {
		p.dirty = true
	}
	p.flush()
}

// Tick applies a settled upload, if any, and flushes queued changes.
func (p *PredictPresenter) Tick() {
	if p == nil || p.ctrl == nil {
		return
	}
	if p.ctrl.Poll() {
		p.dirty = true
	}
	p.flush()
}

func (p *PredictPresenter) flush() {
	for _, s := range p.pending {
		switch s.Kind {
		case predict.StatusSuccess:
			p.history.RecordSuccess(s.Label, s.Latency)
		case predict.StatusFailure:
			p.history.RecordFailure()
		}
		p.dirty = true
	}
	p.pending = p.pending[:0]

	busy := p.ctrl.Busy()
	if p.submission.SetInFlight(busy) {
		p.dirty = true
	}
	if !p.dirty || p.view == nil {
		return
	}
	p.dirty = false
	st := p.ctrl.Status()
	p.view.SetButton(p.ctrl.Current().ButtonText(), !busy)
	p.view.SetConfigEditable(!busy)
	p.view.SetStatus(st.Message, st.Kind == predict.StatusFailure)
	p.view.UpdateResult(p.ctrl.Result())
	p.view.UpdateInput(p.ctrl.Input())
}
