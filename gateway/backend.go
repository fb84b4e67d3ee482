package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

const (
	// FormField is the multipart field the classifier backend reads.
	FormField = "uploadFile"
	// FormFilename is the filename sent with the image part.
	FormFilename = "img.png"

	maxBackendBody = 4 << 10
)

var (
	ErrBackendStatus      = errors.New("backend returned non-OK status")
	ErrBackendTimeout     = errors.New("backend timed out")
	ErrBackendUnreachable = errors.New("backend unreachable")
)

// Backend classifies a PNG image and returns the label text.
type Backend interface {
	Classify(ctx context.Context, png []byte) (string, error)
}

// BackendClient posts images to the classifier backend as multipart forms.
type BackendClient struct {
	url    *url.URL
	client *http.Client
}

// NewBackendClient resolves path against baseURL. A nil client uses
// http.DefaultClient.
func NewBackendClient(baseURL, path string, client *http.Client) (*BackendClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host required", baseURL)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid backend path: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &BackendClient{url: u.ResolveReference(ref), client: client}, nil
}

// URL returns the resolved backend URL.
func (c *BackendClient) URL() string { return c.url.String() }

func (c *BackendClient) Classify(ctx context.Context, png []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(FormField, FormFilename)
	if err != nil {
		return "", fmt.Errorf("create form: %w", err)
	}
	if _, err = part.Write(png); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url.String(), body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	response, err := c.client.Do(request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrBackendTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxBackendBody))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrBackendTimeout, err)
		}
		return "", fmt.Errorf("%w: read body: %v", ErrBackendUnreachable, err)
	}
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d, body: %s", ErrBackendStatus, response.StatusCode, strings.TrimSpace(string(raw)))
	}
	return strings.TrimSpace(string(raw)), nil
}

var _ Backend = (*BackendClient)(nil)
