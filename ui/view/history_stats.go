package view

import (
	"fmt"

	"github.com/soocke/digit-sketch-go/ui/model"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// HistoryStats shows prediction counters.
type HistoryStats interface {
	SetHistory(s model.HistorySnapshot)
}

type historyStats struct {
	countLbl   *LabelWidget
	latencyLbl *LabelWidget
}

// NewHistoryStats creates the counter labels stacked from startRow inside parent.
func NewHistoryStats(parent *FrameWidget, startRow int) HistoryStats {
	s := &historyStats{countLbl: Label(Width(24), Anchor("w")), latencyLbl: Label(Width(24), Anchor("w"))}
	if parent != nil {
		Grid(s.countLbl, In(parent), Row(startRow), Column(0), Sticky("w"), Padx("0.2m"))
		Grid(s.latencyLbl, In(parent), Row(startRow+1), Column(0), Sticky("w"), Padx("0.2m"))
	} else {
		Grid(s.countLbl, Row(startRow), Column(0), Sticky("w"), Padx("0.2m"))
		Grid(s.latencyLbl, Row(startRow+1), Column(0), Sticky("w"), Padx("0.2m"))
	}
	s.SetHistory(model.HistorySnapshot{})
	return s
}

func (s *historyStats) SetHistory(v model.HistorySnapshot) {
	if s == nil || s.countLbl == nil {
		return
	}
	s.countLbl.Configure(Txt(fmt.Sprintf("Predictions: %d  Failures: %d", v.Predictions, v.Failures)))
	if v.Predictions == 0 {
		s.latencyLbl.Configure(Txt("Latency: -"))
		return
	}
	s.latencyLbl.Configure(Txt(fmt.Sprintf("Latency: %dms (avg %dms)", v.LastLatency.Milliseconds(), v.AvgLatency.Milliseconds())))
}
