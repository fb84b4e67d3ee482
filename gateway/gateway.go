package gateway

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/soocke/digit-sketch-go/domain/classifier"
	"github.com/soocke/digit-sketch-go/domain/preprocess"
)

// maxUploadBytes caps the JSON body of an upload request.
const maxUploadBytes = 1 << 20

// Handler serves the server half of the upload contract: it accepts the
// JSON data URL the sketch pad sends and relays the classifier's label as
// plain text.
type Handler struct {
	backend Backend
	timeout time.Duration
	logger  *slog.Logger
}

func NewHandler(backend Backend, timeout time.Duration, logger *slog.Logger) *Handler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{backend: backend, timeout: timeout, logger: logger}
}

// NewRouter registers the gateway routes on a fresh gin engine.
func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery(), requestLogger(logger))
	e.POST("/upload", h.Upload)
	e.GET("/healthz", h.Health)
	return e
}

// Upload handles POST /upload.
func (h *Handler) Upload(c *gin.Context) {
	reqID := c.GetHeader(classifier.RequestIDHeader)
	if reqID != "" {
		c.Header(classifier.RequestIDHeader, reqID)
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	var req classifier.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reject(c, reqID, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	mime, data, err := preprocess.DecodeDataURL(req.ImgURL)
	if err != nil {
		h.reject(c, reqID, http.StatusBadRequest, "invalid data URL format", err)
		return
	}
	png, err := normalize(mime, data)
	if err != nil {
		h.reject(c, reqID, http.StatusBadRequest, "payload is not a decodable image", err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	label, err := h.backend.Classify(ctx, png)
	switch {
	case errors.Is(err, ErrBackendTimeout):
		h.reject(c, reqID, http.StatusGatewayTimeout, "classifier timed out", err)
		return
	case err != nil:
		h.reject(c, reqID, http.StatusBadGateway, "classifier failed", err)
		return
	}
	if h.logger != nil {
		h.logger.Info("label relayed", "request_id", reqID, "label", label)
	}
	c.String(http.StatusOK, label)
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) reject(c *gin.Context, reqID string, status int, msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, "request_id", reqID, "status", status, "error", err)
	}
	c.String(status, msg)
}

// normalize returns data unchanged when it already is a 28x28 PNG and
// otherwise re-encodes it as a 28x28 grayscale PNG.
func normalize(mime string, data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	size := img.Bounds().Size()
	if mime == "image/png" && size == image.Pt(preprocess.TargetSize, preprocess.TargetSize) {
		return data, nil
	}
	img = imaging.Resize(img, preprocess.TargetSize, preprocess.TargetSize, imaging.Linear)
	img = imaging.Grayscale(img)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger == nil {
			return
		}
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetHeader(classifier.RequestIDHeader),
		)
	}
}
