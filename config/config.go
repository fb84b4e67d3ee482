package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Response formats understood by the classifier client.
const (
	ResponseText = "text"
	ResponseJSON = "json"
)

// Config holds runtime configuration for the sketch pad and the upload gateway.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug    bool `json:"debug"`
	DarkMode bool `json:"dark_mode"`

	// Classifier endpoint. UploadPath is resolved against Endpoint.
	Endpoint       string `json:"endpoint"`
	UploadPath     string `json:"upload_path"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	ResponseFormat string `json:"response_format"` // "text" or "json"

	// Drawing surface (intrinsic raster size) and on-screen size.
	CanvasWidth   int `json:"canvas_width"`
	CanvasHeight  int `json:"canvas_height"`
	DisplayWidth  int `json:"display_width"`
	DisplayHeight int `json:"display_height"`

	StrokeWidth float64 `json:"stroke_width"`
	Foreground  string  `json:"foreground"`
	Background  string  `json:"background"`
	FontSize    float64 `json:"font_size"`

	// Gateway (server half of the upload contract).
	ListenAddr            string `json:"listen_addr"`
	BackendURL            string `json:"backend_url"`
	BackendPath           string `json:"backend_path"`
	BackendTimeoutSeconds int    `json:"backend_timeout_seconds"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		Endpoint:              "http://localhost:8080/",
		UploadPath:            "upload",
		TimeoutSeconds:        10,
		ResponseFormat:        ResponseText,
		CanvasWidth:           280,
		CanvasHeight:          280,
		DisplayWidth:          280,
		DisplayHeight:         280,
		StrokeWidth:           8,
		Foreground:            "#ffffff",
		Background:            "#000000",
		FontSize:              180,
		ListenAddr:            ":8080",
		BackendURL:            "http://django:8000/",
		BackendPath:           "ai/",
		BackendTimeoutSeconds: 10,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if strings.TrimSpace(c.Endpoint) == "" {
		c.Endpoint = d.Endpoint
	}
	if err := checkBaseURL("endpoint", c.Endpoint); err != nil {
		return err
	}
	if strings.TrimSpace(c.UploadPath) == "" {
		c.UploadPath = d.UploadPath
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	switch strings.ToLower(strings.TrimSpace(c.ResponseFormat)) {
	case ResponseJSON:
		c.ResponseFormat = ResponseJSON
	default:
		c.ResponseFormat = ResponseText
	}
	if c.CanvasWidth <= 0 {
		c.CanvasWidth = d.CanvasWidth
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = d.CanvasHeight
	}
	if c.DisplayWidth <= 0 {
		c.DisplayWidth = c.CanvasWidth
	}
	if c.DisplayHeight <= 0 {
		c.DisplayHeight = c.CanvasHeight
	}
	if c.StrokeWidth <= 0 {
		c.StrokeWidth = d.StrokeWidth
	}
	if _, ok := ParseHexColor(c.Foreground); !ok {
		c.Foreground = d.Foreground
	}
	if _, ok := ParseHexColor(c.Background); !ok {
		c.Background = d.Background
	}
	if c.FontSize <= 0 {
		c.FontSize = d.FontSize
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = d.ListenAddr
	}
	if strings.TrimSpace(c.BackendURL) == "" {
		c.BackendURL = d.BackendURL
	}
	if err := checkBaseURL("backend_url", c.BackendURL); err != nil {
		return err
	}
	if strings.TrimSpace(c.BackendPath) == "" {
		c.BackendPath = d.BackendPath
	}
	if c.BackendTimeoutSeconds <= 0 {
		c.BackendTimeoutSeconds = d.BackendTimeoutSeconds
	}
	return nil
}

// checkBaseURL rejects URLs the HTTP clients cannot resolve paths against.
func checkBaseURL(key, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s %q: scheme and host required", key, raw)
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
