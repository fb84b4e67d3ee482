package preprocess

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const (
	pngMIME      = "image/png"
	base64Marker = ";base64,"
)

// ErrInvalidDataURL reports a string that is not a base64 data URL.
var ErrInvalidDataURL = errors.New("invalid data URL format")

// EncodeDataURL encodes img as PNG and wraps it in a data URL.
func EncodeDataURL(img image.Image) (string, error) {
	if img == nil {
		return "", ErrEmptySource
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:" + pngMIME + base64Marker + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL splits a "data:<mime>;base64,<payload>" string and returns
// the mime type and decoded bytes.
func DecodeDataURL(s string) (mime string, data []byte, err error) {
	if !strings.HasPrefix(s, "data:") {
		return "", nil, ErrInvalidDataURL
	}
	head, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), base64Marker)
	if !ok || payload == "" {
		return "", nil, ErrInvalidDataURL
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode base64: %w", err)
	}
	return head, data, nil
}
