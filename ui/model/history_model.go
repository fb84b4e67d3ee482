package model

import (
	"time"
)

// HistoryModel counts settled predictions for the status bar. It is
// decoupled from the UI; presenters should poll Values() and update views.
// The zero value is ready to use.
type HistoryModel struct {
	predictions int
	failures    int
	lastLabel   string
	lastLatency time.Duration
	totalTime   time.Duration
}

// NewHistoryModel returns a pointer to a ready-to-use HistoryModel.
func NewHistoryModel() *HistoryModel { return &HistoryModel{} }

// RecordSuccess stores a successful prediction and its round-trip latency.
func (m *HistoryModel) RecordSuccess(label string, latency time.Duration) {
	if m == nil {
		return
	}
	m.predictions++
	m.lastLabel = label
	m.lastLatency = latency
	m.totalTime += latency
}

// RecordFailure counts a prediction that was unavailable.
func (m *HistoryModel) RecordFailure() {
	if m == nil {
		return
	}
	m.failures++
}

// HistorySnapshot is a copy of the model's counters.
type HistorySnapshot struct {
	Predictions int
	Failures    int
	LastLabel   string
	LastLatency time.Duration
	AvgLatency  time.Duration
}

// Values returns the current counters. AvgLatency is zero until the first success.
func (m *HistoryModel) Values() HistorySnapshot {
	if m == nil {
		return HistorySnapshot{}
	}
	s := HistorySnapshot{
		Predictions: m.predictions,
		Failures:    m.failures,
		LastLabel:   m.lastLabel,
		LastLatency: m.lastLatency,
	}
	if m.predictions > 0 {
		s.AvgLatency = m.totalTime / time.Duration(m.predictions)
	}
	return s
}
