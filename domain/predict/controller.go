package predict

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/soocke/digit-sketch-go/config"
	"github.com/soocke/digit-sketch-go/domain/classifier"
	"github.com/soocke/digit-sketch-go/domain/preprocess"
)

// Controller owns the toggle state and the upload lifecycle. Every method
// except the upload goroutine runs on the UI thread; settled uploads are
// handed back through results and applied by Poll.
type Controller struct {
	state   State
	status  Status
	logger  *slog.Logger
	timeout time.Duration

	surface    Surface
	display    Display
	service    classifier.Service
	preprocess func(image.Image) (preprocess.Result, error)

	result *image.RGBA
	input  *image.RGBA

	inflight *semaphore.Weighted
	results  chan outcome
	cancel   context.CancelFunc
	closed   bool

	stateListeners  []StateListener
	statusListeners []StatusListener
}

type outcome struct {
	prediction *classifier.Prediction
	err        error
}

// NewController builds a controller in StateReadyToPredict with a result
// raster the size of the drawing raster.
func NewController(logger *slog.Logger, cfg *config.Config, surface Surface, display Display, service classifier.Service) *Controller {
	timeout := 10 * time.Second
	if cfg != nil && cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	bounds := image.Rect(0, 0, 1, 1)
	if surface != nil && surface.Raster() != nil {
		bounds = surface.Raster().Bounds()
	}
	c := &Controller{
		state:      StateReadyToPredict,
		status:     Status{Kind: StatusIdle, Message: "Draw a digit"},
		logger:     logger,
		timeout:    timeout,
		surface:    surface,
		display:    display,
		service:    service,
		preprocess: preprocess.Process,
		result:     image.NewRGBA(bounds),
		inflight:   semaphore.NewWeighted(1),
		results:    make(chan outcome, 1),
	}
	if display != nil {
		display.Clear(c.result)
	}
	return c
}

// Activate dispatches the single control on the current state. It reports
// whether the press did anything; presses while an upload is in flight are
// ignored.
func (c *Controller) Activate() bool {
	if c.closed {
		return false
	}
	switch c.state {
	case StateReadyToPredict:
		return c.submit()
	case StateReadyToClear:
		c.clear()
		return true
	}
	return false
}

func (c *Controller) submit() bool {
	if !c.inflight.TryAcquire(1) {
		if c.logger != nil {
			c.logger.Debug("prediction already in flight, ignoring activation")
		}
		return false
	}
	var raster image.Image
	if c.surface != nil {
		raster = c.surface.Raster()
	}
	res, err := c.preprocess(raster)
	if err != nil {
		c.inflight.Release(1)
		if c.logger != nil {
			c.logger.Error("preprocess failed", "error", err)
		}
		c.setStatus(Status{Kind: StatusFailure, Message: "Nothing to send"})
		return false
	}
	if c.service == nil {
		c.inflight.Release(1)
		c.setStatus(Status{Kind: StatusFailure, Message: "Prediction unavailable"})
		return false
	}
	c.input = res.Image
	svc := c.service

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancel = cancel
	c.setStatus(Status{Kind: StatusPending, Message: "Predicting..."})
	go func(imgURL string) {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				if c.logger != nil {
					c.logger.Error("upload panic", "error", r, "stack", string(debug.Stack()))
				}
				c.results <- outcome{err: classifier.ErrUnavailable}
			}
		}()
		p, err := svc.Submit(ctx, imgURL)
		c.results <- outcome{prediction: p, err: err}
	}(res.DataURL)
	return true
}

// Poll applies a settled upload, if any. It never blocks and reports whether
// the state or status changed.
func (c *Controller) Poll() bool {
	select {
	case o := <-c.results:
		c.settle(o)
		return true
	default:
		return false
	}
}

func (c *Controller) settle(o outcome) {
	c.cancel = nil
	c.inflight.Release(1)
	if c.closed {
		return
	}
	if o.err != nil || o.prediction == nil {
		err := o.err
		if err == nil {
			err = classifier.ErrUnavailable
		}
		if c.logger != nil {
			c.logger.Warn("prediction unavailable", "error", err)
		}
		c.setStatus(Status{Kind: StatusFailure, Message: failureMessage(err)})
		return
	}
	if c.display != nil {
		c.display.Render(c.result, o.prediction.Label)
	}
	c.transition(StateReadyToClear)
	c.setStatus(Status{
		Kind:      StatusSuccess,
		Message:   "Prediction: " + o.prediction.Label,
		Label:     o.prediction.Label,
		RequestID: o.prediction.RequestID,
		Latency:   o.prediction.Latency,
	})
}

func (c *Controller) clear() {
	if c.surface != nil {
		c.surface.Clear()
	}
	if c.display != nil {
		c.display.Clear(c.result)
	}
	c.input = nil
	c.transition(StateReadyToPredict)
	c.setStatus(Status{Kind: StatusIdle, Message: "Draw a digit"})
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, classifier.ErrTimeout):
		return "Classifier timed out"
	case errors.Is(err, classifier.ErrStatus):
		return "Classifier returned an error"
	case errors.Is(err, classifier.ErrTransport):
		return "Classifier unreachable"
	case errors.Is(err, classifier.ErrMalformed):
		return "Classifier sent an unexpected response"
	case errors.Is(err, classifier.ErrCanceled):
		return "Prediction canceled"
	default:
		return "Prediction unavailable"
	}
}

func (c *Controller) transition(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	if c.logger != nil {
		c.logger.Debug("predict state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range c.stateListeners {
		l(prev, next)
	}
}

func (c *Controller) setStatus(s Status) {
	c.status = s
	for _, l := range c.statusListeners {
		l(s)
	}
}

func (c *Controller) AddStateListener(l StateListener)   { c.stateListeners = append(c.stateListeners, l) }
func (c *Controller) AddStatusListener(l StatusListener) { c.statusListeners = append(c.statusListeners, l) }
func (c *Controller) Current() State                     { return c.state }
func (c *Controller) Status() Status                     { return c.status }

// SetService swaps the classifier used by later submissions.
func (c *Controller) SetService(s classifier.Service) { c.service = s }

// SetTimeout changes the deadline applied to later submissions.
func (c *Controller) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Busy reports whether an upload is in flight.
func (c *Controller) Busy() bool { return c.cancel != nil }

// Result returns the raster predictions are rendered into.
func (c *Controller) Result() *image.RGBA { return c.result }

// Input returns the 28x28 image sent with the latest submission, or nil.
func (c *Controller) Input() *image.RGBA { return c.input }

// Close cancels an in-flight upload. Later results are discarded.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
}

var _ ControllerContract = (*Controller)(nil)
