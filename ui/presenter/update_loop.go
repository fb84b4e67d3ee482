package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It ticks the sub-presenters in dependency order and invokes a scheduler
// callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Predict  *PredictPresenter
	Canvas   *CanvasPresenter
	History  *HistoryPresenter
	Schedule func()
}

func NewLoop(predict *PredictPresenter, canvas *CanvasPresenter, history *HistoryPresenter, schedule func()) *Loop {
	return &Loop{Predict: predict, Canvas: canvas, History: history, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	// Predict first: a settled clear invalidates the canvas in the same tick.
	if l.Predict != nil {
		l.Predict.Tick()
	}
	if l.Canvas != nil {
		l.Canvas.Tick()
	}
	if l.History != nil {
		l.History.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
