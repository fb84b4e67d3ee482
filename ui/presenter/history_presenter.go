package presenter

import (
	"github.com/soocke/digit-sketch-go/ui/model"
)

// HistoryView displays prediction counters.
type HistoryView interface {
	SetHistory(s model.HistorySnapshot)
}

// HistoryPresenter pushes the history counters to the view when they change.
type HistoryPresenter struct {
	history *model.HistoryModel
	view    HistoryView
	last    model.HistorySnapshot
	shown   bool
}

// NewHistoryPresenter returns a new HistoryPresenter.
func NewHistoryPresenter(history *model.HistoryModel, view HistoryView) *HistoryPresenter {
	return &HistoryPresenter{history: history, view: view}
}

// Tick updates the view if the counters moved since the last tick.
func (p *HistoryPresenter) Tick() {
	if p == nil || p.history == nil || p.view == nil {
		return
	}
	v := p.history.Values()
	if p.shown && v == p.last {
		return
	}
	p.last, p.shown = v, true
	p.view.SetHistory(v)
}
