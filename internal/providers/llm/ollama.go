package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sandevgo/raider/internal/core"
)

// Ollama talks to a local Ollama server through its OpenAI compatible
// endpoint. Models come from the native tags API.
type Ollama struct {
	*OpenAICompatible
}

func NewOllama(baseURL, apiKey, model string, timeout time.Duration) *Ollama {
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			Name:       "ollama",
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			Timeout:    timeout,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}

func (o *Ollama) Models(ctx context.Context) ([]core.Model, error) {
	type ollamaTag struct {
		Name string `json:"name"`
	}
	type ollamaResponse struct {
		Models []ollamaTag `json:"models"`
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := o.doRequest(ctx, http.MethodGet, "/api/tags", nil, o.headers())
	if err != nil {
		return nil, fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var result ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	models := make([]core.Model, 0, len(result.Models))
	for _, m := range result.Models {
		models = append(models, core.Model{
			ID:   m.Name,
			Name: m.Name,
		})
	}
	return models, nil
}
