package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soocke/digit-sketch-go/config"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testImage = "data:image/png;base64,iVBORw0KGgo="

func newTestClient(t *testing.T, srv *httptest.Server, format string) *Client {
	t.Helper()
	c, err := NewClient(srv.URL+"/", "upload", format, srv.Client(), discardLogger)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestSubmit_SuccessPlainText(t *testing.T) {
	var gotBody UploadRequest
	var gotCT, gotID, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		gotID = r.Header.Get(RequestIDHeader)
		gotPath = r.URL.Path
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "7\n")
	}))
	defer srv.Close()

	p, err := newTestClient(t, srv, config.ResponseText).Submit(context.Background(), testImage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Label != "7" {
		t.Fatalf("expected label 7, got %+v", p)
	}
	if gotPath != "/upload" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotCT != "application/json" {
		t.Fatalf("unexpected content type %q", gotCT)
	}
	if gotBody.ImgURL != testImage {
		t.Fatalf("image not forwarded, got %q", gotBody.ImgURL)
	}
	if gotID == "" || gotID != p.RequestID {
		t.Fatalf("request id mismatch: header=%q prediction=%q", gotID, p.RequestID)
	}
}

func TestSubmit_Non2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, err := newTestClient(t, srv, config.ResponseText).Submit(context.Background(), testImage)
	if p != nil {
		t.Fatalf("expected nil prediction, got %+v", p)
	}
	if !errors.Is(err, ErrStatus) || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrStatus wrapping ErrUnavailable, got %v", err)
	}
}

func TestSubmit_OfflineReturnsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, srv, config.ResponseText)
	srv.Close()

	p, err := c.Submit(context.Background(), testImage)
	if p != nil {
		t.Fatalf("expected nil prediction")
	}
	if !errors.Is(err, ErrTransport) || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestSubmit_TimeoutIsDistinct(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	p, err := newTestClient(t, srv, config.ResponseText).Submit(ctx, testImage)
	if p != nil {
		t.Fatalf("expected nil prediction")
	}
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if errors.Is(err, ErrTransport) {
		t.Fatalf("timeout must not be reported as transport failure")
	}
}

func TestSubmit_MalformedBody(t *testing.T) {
	for _, body := range []string{"", "seven", "12", "<html>oops</html>"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		}))
		p, err := newTestClient(t, srv, config.ResponseText).Submit(context.Background(), testImage)
		srv.Close()
		if p != nil || !errors.Is(err, ErrMalformed) {
			t.Fatalf("body %q: expected ErrMalformed, got p=%+v err=%v", body, p, err)
		}
	}
}

func TestSubmit_JSONFormat(t *testing.T) {
	cases := map[string]string{
		`"4"`:           "4",
		`4`:             "4",
		`{"label":"9"}`: "9",
		`{"label":2}`:   "2",
	}
	for body, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, body)
		}))
		p, err := newTestClient(t, srv, config.ResponseJSON).Submit(context.Background(), testImage)
		srv.Close()
		if err != nil || p == nil || p.Label != want {
			t.Fatalf("body %s: want %q got p=%+v err=%v", body, want, p, err)
		}
	}
}

func TestSubmit_JSONFormatRejectsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "7 is my guess")
	}))
	defer srv.Close()
	_, err := newTestClient(t, srv, config.ResponseJSON).Submit(context.Background(), testImage)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestSubmit_OversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, maxResponseBytes+10)
		for i := range buf {
			buf[i] = ' '
		}
		buf[0] = '7'
		_, _ = w.Write(buf)
	}))
	defer srv.Close()
	_, err := newTestClient(t, srv, config.ResponseText).Submit(context.Background(), testImage)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for oversized body, got %v", err)
	}
}

func TestNewClient_ResolvesRelativePath(t *testing.T) {
	c, err := NewClient("http://example.test/app/index", "upload", "", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.URL(); got != "http://example.test/app/upload" {
		t.Fatalf("unexpected upload url %q", got)
	}
	if _, err := NewClient("not a url", "upload", "", nil, nil); err == nil {
		t.Fatalf("expected error for endpoint without scheme/host")
	}
}
