package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMalformedPayload reports a 2xx response without a usable generated_text.
	ErrMalformedPayload = errors.New("inference: malformed payload")
	// ErrNotConfigured is returned when http mode is selected without an endpoint.
	ErrNotConfigured = errors.New("inference: endpoint not configured")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference http status %d: %s", e.Code, e.Body)
}

// Generator produces free text for a prompt using a remote model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Parameters bound the remote generation.
type Parameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
	DoSample    bool    `json:"do_sample"`
}

// Config controls generator construction.
type Config struct {
	Mode       string
	URL        string
	APIToken   string
	Timeout    time.Duration
	Parameters Parameters
}

const DefaultTimeout = 5 * time.Second

// NewGenerator builds the remote generator for cfg. It returns a nil Generator
// (and no error) when the remote tier is switched off or, in auto mode, when no
// endpoint is configured.
func NewGenerator(cfg Config) (Generator, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.URL) == "" {
			return nil, nil
		}
		return NewHTTPGenerator(cfg), nil
	case "http":
		if strings.TrimSpace(cfg.URL) == "" {
			return nil, ErrNotConfigured
		}
		return NewHTTPGenerator(cfg), nil
	case "off":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported inference mode %q", cfg.Mode)
	}
}
