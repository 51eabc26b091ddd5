package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/raider/internal/core"
)

type OpenAICompatible struct {
	baseProvider
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type OpenAICompatibleConfig struct {
	Name         string
	BaseURL      string
	APIKey       string
	Model        string
	Timeout      time.Duration
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.Name, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout),
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

// Infer sends the conversation context as the system message and the new
// question as the user message.
func (o *OpenAICompatible) Infer(ctx context.Context, contextText, userText string) (string, error) {
	payload := chatRequest{
		Model: o.model,
		Messages: []core.Message{
			{Role: core.RoleSystem, Content: contextText},
			{Role: core.RoleUser, Content: userText},
		},
	}

	data, err := o.post(ctx, "/v1/chat/completions", payload, o.headers())
	if err != nil {
		return "", err
	}
	return o.parseResponse(data)
}

func (o *OpenAICompatible) Models(ctx context.Context) ([]core.Model, error) {
	resp, err := o.doRequest(ctx, http.MethodGet, "/v1/models", nil, o.headers())
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, errorReason(data))
	}

	var apiResp struct {
		Data []struct {
			ID            string `json:"id"`
			Name          string `json:"name"`
			ContextLength int    `json:"context_length"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}

	models := make([]core.Model, 0, len(apiResp.Data))
	for _, m := range apiResp.Data {
		name := m.Name
		if name == "" {
			name = m.ID
		}
		models = append(models, core.Model{ID: m.ID, Name: name, ContextLength: m.ContextLength})
	}
	return models, nil
}

func (o *OpenAICompatible) headers() map[string]string {
	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}
	return headers
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []core.Message `json:"messages"`
	Stream   bool           `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message      core.Message `json:"message"`
		FinishReason string       `json:"finish_reason"`
	} `json:"choices"`
}

func (o *OpenAICompatible) parseResponse(data []byte) (string, error) {
	var result chatResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", o.fail(0, "decode response", err)
	}
	if len(result.Choices) == 0 {
		return "", o.fail(0, "empty choices", nil)
	}

	content := result.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", o.fail(0, "empty response", nil)
	}
	return content, nil
}
