package config

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, true
}

// ForegroundColor returns the stroke/text color, falling back to white.
func (c *Config) ForegroundColor() color.RGBA {
	if col, ok := ParseHexColor(c.Foreground); ok {
		return col
	}
	return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
}

// BackgroundColor returns the canvas fill color, falling back to black.
func (c *Config) BackgroundColor() color.RGBA {
	if col, ok := ParseHexColor(c.Background); ok {
		return col
	}
	return color.RGBA{A: 0xFF}
}
