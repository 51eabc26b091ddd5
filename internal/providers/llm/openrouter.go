package llm

import (
	"time"

	"github.com/sandevgo/raider/internal/core"
)

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(baseURL, apiKey, model string, timeout time.Duration) *OpenRouter {
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			Name:       "openrouter",
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			Timeout:    timeout,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"X-Title": core.AppName,
			},
		}),
	}
}
