package predict

import (
	"image"
	"time"
)

// State is the single control's mode.
type State int

const (
	StateReadyToPredict State = iota
	StateReadyToClear
)

func (s State) String() string {
	switch s {
	case StateReadyToPredict:
		return "ready_to_predict"
	case StateReadyToClear:
		return "ready_to_clear"
	default:
		return "unknown"
	}
}

// ButtonText is the label the toggle control shows in state s.
func (s State) ButtonText() string {
	if s == StateReadyToClear {
		return "Clear"
	}
	return "Make Prediction"
}

// StatusKind classifies the status line.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusPending
	StatusSuccess
	StatusFailure
)

func (k StatusKind) String() string {
	switch k {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Status is the user-visible outcome of the latest action.
type Status struct {
	Kind      StatusKind
	Message   string
	Label     string
	RequestID string
	Latency   time.Duration
}

// StateListener is called on each state transition.
type StateListener func(prev, next State)

// StatusListener is called whenever the status line changes.
type StatusListener func(Status)

// Surface is the drawing raster owner the controller reads and clears.
type Surface interface {
	Raster() *image.RGBA
	Clear()
}

// Display draws prediction labels onto the result raster.
type Display interface {
	Render(dst *image.RGBA, label string)
	Clear(dst *image.RGBA)
}

// Interface slices for presenters.
type StateSource interface {
	Current() State
	Busy() bool
}

type Toggle interface {
	Activate() bool
}

// ControllerContract aggregate for DI.
type ControllerContract interface {
	StateSource
	Toggle
	Poll() bool
	Status() Status
	Result() *image.RGBA
	Input() *image.RGBA
	AddStateListener(StateListener)
	AddStatusListener(StatusListener)
	Close()
}
