package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/raider/pkg/log"
)

const (
	ProviderOllama     = "ollama"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderCustom     = "custom"
)

type ProviderConfig struct {
	Provider string        `env:"LLM_PROVIDER" envDefault:"ollama"`
	Model    string        `env:"LLM_MODEL" envDefault:"AiRaider:latest"`
	BaseURL  string        `env:"LLM_BASE_URL"`
	APIKey   string        `env:"LLM_API_KEY"`
	Timeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"120s"`
}

func ParseProviderConfig() (*ProviderConfig, error) {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse provider config: %w", err)
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	if c.BaseURL == "" {
		switch c.Provider {
		case ProviderCustom:
			return nil, fmt.Errorf("LLM_BASE_URL is required for the custom provider")
		default:
			c.BaseURL = DefaultBaseURL(c.Provider)
			if c.BaseURL == "" {
				return nil, fmt.Errorf("unknown llm provider: %q", c.Provider)
			}
		}
	}
	if c.Timeout <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c, nil
}

// DefaultBaseURL returns the public endpoint of a known provider, or "" for
// custom and unknown ones.
func DefaultBaseURL(provider string) string {
	switch provider {
	case ProviderOllama:
		return "http://localhost:11434"
	case ProviderOpenAI:
		return "https://api.openai.com"
	case ProviderOpenRouter:
		return "https://openrouter.ai/api"
	case ProviderAnthropic:
		return "https://api.anthropic.com"
	}
	return ""
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c, err := ParseProviderConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func (c ProviderConfig) GetProvider() string {
	return c.Provider
}

func (c ProviderConfig) GetModel() string {
	return c.Model
}

func (c ProviderConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c ProviderConfig) GetAPIKey() string {
	return c.APIKey
}

func (c ProviderConfig) GetTimeout() time.Duration {
	return c.Timeout
}
