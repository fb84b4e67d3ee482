package model

import (
	"sync/atomic"
)

// SubmissionModel tracks whether an upload is in flight. The zero value is
// settled and usable. The presenter writes it after each controller update
// and the toggle button callback reads it.
type SubmissionModel struct{ inFlight atomic.Bool }

// InFlight reports whether an upload is pending.
func (m *SubmissionModel) InFlight() bool {
	if m == nil {
		return false
	}
	return m.inFlight.Load()
}

// SetInFlight stores the flag and reports whether it changed.
func (m *SubmissionModel) SetInFlight(b bool) bool {
	if m == nil {
		return false
	}
	return m.inFlight.Swap(b) != b
}
