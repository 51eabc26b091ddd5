package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/raider/internal/core"
)

const (
	defaultTimeout = 120 * time.Second
	// maxErrorBody caps how much of a failed response ends up in the reason.
	maxErrorBody = 512
)

type baseProvider struct {
	name    string
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func newBaseProvider(name, baseURL, apiKey, model string, timeout time.Duration) baseProvider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return baseProvider{
		name: name,
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

func (b *baseProvider) Name() string  { return b.name }
func (b *baseProvider) Model() string { return b.model }

func (b *baseProvider) doRequest(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}

// post sends a JSON request and returns the body of a 200 response. Any
// other outcome is a *core.InferenceError.
func (b *baseProvider) post(ctx context.Context, path string, payload any, headers map[string]string) ([]byte, error) {
	resp, err := b.doRequest(ctx, http.MethodPost, path, payload, headers)
	if err != nil {
		return nil, b.fail(0, "request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, b.fail(0, "read body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, b.fail(resp.StatusCode, errorReason(data), nil)
	}
	return data, nil
}

func (b *baseProvider) fail(status int, reason string, err error) *core.InferenceError {
	return &core.InferenceError{Provider: b.name, Status: status, Reason: reason, Err: err}
}

// errorReason extracts a message from the usual {"error": ...} envelopes
// and falls back to the raw body.
func errorReason(data []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(data, &envelope) == nil && len(envelope.Error) > 0 {
		var msg string
		if json.Unmarshal(envelope.Error, &msg) == nil && msg != "" {
			return msg
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
	}

	reason := strings.TrimSpace(string(data))
	if len(reason) > maxErrorBody {
		n := maxErrorBody
		for n > 0 && !utf8.RuneStart(reason[n]) {
			n--
		}
		reason = reason[:n] + "..."
	}
	if reason == "" {
		reason = "empty error body"
	}
	return reason
}
