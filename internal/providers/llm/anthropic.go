package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandevgo/raider/internal/core"
)

const anthropicVersion = "2023-06-01"

type Anthropic struct {
	baseProvider
}

func NewAnthropic(baseURL, apiKey, model string, timeout time.Duration) *Anthropic {
	return &Anthropic{
		baseProvider: newBaseProvider("anthropic", baseURL, apiKey, model, timeout),
	}
}

// Infer uses the messages API, where the conversation context goes into the
// top-level system field.
func (a *Anthropic) Infer(ctx context.Context, contextText, userText string) (string, error) {
	payload := map[string]any{
		"model":      a.model,
		"max_tokens": 4096,
		"system":     contextText,
		"messages": []core.Message{
			{Role: core.RoleUser, Content: userText},
		},
	}

	data, err := a.post(ctx, "/v1/messages", payload, a.headers())
	if err != nil {
		return "", err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", a.fail(0, "decode response", err)
	}

	var sb strings.Builder
	for _, c := range result.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", a.fail(0, "empty response", nil)
	}
	return sb.String(), nil
}

func (a *Anthropic) Models(ctx context.Context) ([]core.Model, error) {
	var models []core.Model
	afterID := ""

	for {
		path := "/v1/models?limit=1000"
		if afterID != "" {
			path = fmt.Sprintf("%s&after_id=%s", path, url.QueryEscape(afterID))
		}

		resp, err := a.doRequest(ctx, http.MethodGet, path, nil, a.headers())
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("http %d: %s", resp.StatusCode, errorReason(data))
		}

		var result struct {
			Data []struct {
				ID          string `json:"id"`
				DisplayName string `json:"display_name"`
				Type        string `json:"type"`
			} `json:"data"`
			HasMore bool   `json:"has_more"`
			LastID  string `json:"last_id"`
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		for _, m := range result.Data {
			if m.Type == "model" {
				models = append(models, core.Model{ID: m.ID, Name: m.DisplayName})
			}
		}

		if !result.HasMore {
			break
		}
		afterID = result.LastID
	}

	return models, nil
}

func (a *Anthropic) headers() map[string]string {
	return map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}
}
