package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// HTTPGenerator calls a hosted text-generation endpoint. One attempt per call, no retries.
type HTTPGenerator struct {
	url        string
	token      string
	parameters Parameters
	client     *http.Client
}

type generateRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters Parameters `json:"parameters"`
}

func NewHTTPGenerator(cfg Config) *HTTPGenerator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPGenerator{
		url:        strings.TrimSpace(cfg.URL),
		token:      strings.TrimSpace(cfg.APIToken),
		parameters: cfg.Parameters,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Inputs: prompt, Parameters: g.parameters})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.token)
	}

	res, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return extractGeneratedText(body)
}

// extractGeneratedText accepts either [{"generated_text": ...}, ...] or
// {"generated_text": ...}. Anything else is ErrMalformedPayload.
func extractGeneratedText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: invalid json", ErrMalformedPayload)
	}

	root := gjson.ParseBytes(body)
	var text gjson.Result
	switch {
	case root.IsArray():
		text = root.Get("0.generated_text")
	case root.IsObject():
		text = root.Get("generated_text")
	default:
		return "", fmt.Errorf("%w: unexpected %s", ErrMalformedPayload, root.Type)
	}

	if text.Type != gjson.String || strings.TrimSpace(text.Str) == "" {
		return "", fmt.Errorf("%w: missing generated_text", ErrMalformedPayload)
	}
	return text.Str, nil
}
