package llm

import "time"

// OpenAI provider is implemented using OpenAICompatible.
type OpenAI struct {
	*OpenAICompatible
}

func NewOpenAI(baseURL, apiKey, model string, timeout time.Duration) *OpenAI {
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			Name:       "openai",
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			Timeout:    timeout,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
