package llm

import "time"

// CustomOpenAI is any server speaking the OpenAI chat completions API,
// e.g. llama.cpp, vLLM or LM Studio.
type CustomOpenAI struct {
	*OpenAICompatible
}

func NewCustomOpenAI(baseURL, apiKey, model string, timeout time.Duration) *CustomOpenAI {
	return &CustomOpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			Name:       "custom",
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			Timeout:    timeout,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
