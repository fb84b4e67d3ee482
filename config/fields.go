package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Editable lists the keys accepted by Set, in display order.
var Editable = []string{"endpoint", "upload_path", "timeout_seconds", "response_format", "stroke_width"}

// Get returns the string form of an editable field.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "endpoint":
		return c.Endpoint, nil
	case "upload_path":
		return c.UploadPath, nil
	case "timeout_seconds":
		return strconv.Itoa(c.TimeoutSeconds), nil
	case "response_format":
		return c.ResponseFormat, nil
	case "stroke_width":
		return strconv.FormatFloat(c.StrokeWidth, 'f', -1, 64), nil
	case "debug":
		return strconv.FormatBool(c.Debug), nil
	case "listen_addr":
		return c.ListenAddr, nil
	case "backend_url":
		return c.BackendURL, nil
	case "backend_timeout_seconds":
		return strconv.Itoa(c.BackendTimeoutSeconds), nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Set parses value into the field named by key (the JSON name). It does not
// validate ranges; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "endpoint":
		c.Endpoint = value
	case "upload_path":
		c.UploadPath = value
	case "timeout_seconds":
		return setInt(&c.TimeoutSeconds, key, value)
	case "response_format":
		c.ResponseFormat = value
	case "stroke_width":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.StrokeWidth = f
	case "debug":
		b, ok := parseBoolLoose(value)
		if !ok {
			return fmt.Errorf("%s: invalid boolean %q", key, value)
		}
		c.Debug = b
	case "listen_addr":
		c.ListenAddr = value
	case "backend_url":
		c.BackendURL = value
	case "backend_timeout_seconds":
		return setInt(&c.BackendTimeoutSeconds, key, value)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Overrides collects repeated -set key=value flags.
type Overrides map[string]string

func (o Overrides) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+o[k])
	}
	return strings.Join(parts, ",")
}

func (o Overrides) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	o[strings.TrimSpace(k)] = v
	return nil
}

// Apply sets every override on c and re-validates it.
func (o Overrides) Apply(c *Config) error {
	for k, v := range o {
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return c.Validate()
}

func setInt(dst *int, key, value string) error {
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = i
	return nil
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
