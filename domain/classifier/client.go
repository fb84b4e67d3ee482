package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/digit-sketch-go/config"
)

const (
	// RequestIDHeader carries a per-upload correlation id.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 4 << 10
)

// Client posts preprocessed drawings to the classifier's upload endpoint.
type Client struct {
	url    *url.URL
	client *http.Client
	format string
	logger *slog.Logger
}

// NewClient resolves uploadPath against endpoint the way a browser resolves a
// relative fetch path against the page URL. A nil client uses http.DefaultClient.
func NewClient(endpoint, uploadPath, format string, client *http.Client, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme and host required", endpoint)
	}
	ref, err := url.Parse(uploadPath)
	if err != nil {
		return nil, fmt.Errorf("invalid upload path: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if format != config.ResponseJSON {
		format = config.ResponseText
	}
	return &Client{url: base.ResolveReference(ref), client: client, format: format, logger: logger}, nil
}

// NewClientFromConfig builds a client from the classifier section of cfg.
func NewClientFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return NewClient(cfg.Endpoint, cfg.UploadPath, cfg.ResponseFormat, nil, logger)
}

// URL returns the resolved upload URL.
func (c *Client) URL() string { return c.url.String() }

// Submit uploads imgURL and returns the predicted label. Every failure is
// logged and returned as one of the Err* kinds, all of which wrap
// ErrUnavailable; Submit never panics on bad input or bad responses.
func (c *Client) Submit(ctx context.Context, imgURL string) (*Prediction, error) {
	reqID := uuid.NewString()
	start := time.Now()

	body, err := json.Marshal(UploadRequest{ImgURL: imgURL})
	if err != nil {
		return nil, c.fail(reqID, fmt.Errorf("%w: %v", ErrEncode, err))
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url.String(), bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(reqID, fmt.Errorf("%w: create request: %v", ErrEncode, err))
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(RequestIDHeader, reqID)

	response, err := c.client.Do(request)
	if err != nil {
		return nil, c.fail(reqID, classifyTransport(ctx, err))
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxResponseBytes))
		return nil, c.fail(reqID, fmt.Errorf("%w: status %d", ErrStatus, response.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes+1))
	if err != nil {
		return nil, c.fail(reqID, classifyTransport(ctx, err))
	}
	if len(raw) > maxResponseBytes {
		return nil, c.fail(reqID, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformed, maxResponseBytes))
	}

	label, err := c.parse(raw)
	if err != nil {
		return nil, c.fail(reqID, err)
	}

	p := &Prediction{Label: label, RequestID: reqID, Latency: time.Since(start)}
	if c.logger != nil {
		c.logger.Info("prediction received", "request_id", reqID, "label", label, "latency", p.Latency)
	}
	return p, nil
}

func (c *Client) parse(raw []byte) (string, error) {
	var label string
	if c.format == config.ResponseJSON {
		l, err := parseJSONLabel(raw)
		if err != nil {
			return "", err
		}
		label = l
	} else {
		label = strings.TrimSpace(string(raw))
	}
	if !isDigit(label) {
		return "", fmt.Errorf("%w: label %q is not a single digit", ErrMalformed, truncate(label, 32))
	}
	return label, nil
}

// parseJSONLabel accepts a JSON string, a JSON number or an object with a
// "label" member.
func parseJSONLabel(raw []byte) (string, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("%w: decode json: %v", ErrMalformed, err)
	}
	if obj, ok := v.(map[string]any); ok {
		v = obj["label"]
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), nil
	case json.Number:
		n, err := strconv.ParseInt(t.String(), 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: non-integer label %s", ErrMalformed, t)
		}
		return strconv.FormatInt(n, 10), nil
	default:
		return "", fmt.Errorf("%w: unexpected json label %T", ErrMalformed, v)
	}
}

func classifyTransport(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %v", ErrCanceled, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}

func (c *Client) fail(reqID string, err error) error {
	if c.logger != nil {
		c.logger.Error("upload failed", "request_id", reqID, "url", c.url.String(), "error", err)
	}
	return err
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Service = (*Client)(nil)
