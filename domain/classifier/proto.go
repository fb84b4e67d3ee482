package classifier

import (
	"context"
	"errors"
	"time"
)

// Service represents the remote digit classifier.
type Service interface {
	// Submit uploads an encoded drawing and returns the predicted label.
	Submit(ctx context.Context, imgURL string) (*Prediction, error)
}

// UploadRequest is the JSON body sent to the upload endpoint.
type UploadRequest struct {
	ImgURL string `json:"imgUrl"`
}

// Prediction is a successfully parsed classifier answer.
type Prediction struct {
	Label     string
	RequestID string
	Latency   time.Duration
}

// ErrUnavailable is wrapped by every failure Submit returns, so callers can
// treat all of them as a single "prediction unavailable" outcome.
var ErrUnavailable = errors.New("prediction unavailable")

// Failure kinds. Each one wraps ErrUnavailable.
var (
	ErrStatus    = failure("non-2xx response")
	ErrTransport = failure("network failure")
	ErrTimeout   = failure("request timed out")
	ErrCanceled  = failure("request canceled")
	ErrMalformed = failure("malformed response")
	ErrEncode    = failure("encode request")
)

type kindError struct{ msg string }

func failure(msg string) error { return &kindError{msg: msg} }

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return ErrUnavailable }
