package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/pkg/log"
)

// Provider is an inference backend that can also list its models.
type Provider interface {
	core.Inferencer
	Models(ctx context.Context) ([]core.Model, error)
	Name() string
	Model() string
}

// NewProvider creates the backend selected by cfg.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (Provider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Str("base_url", cfg.GetBaseURL()).
		Msg("starting llm provider")

	baseURL, apiKey, model, timeout := cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel(), cfg.GetTimeout()

	switch cfg.GetProvider() {
	case config.ProviderOllama:
		return NewOllama(baseURL, apiKey, model, timeout), nil
	case config.ProviderOpenAI:
		return NewOpenAI(baseURL, apiKey, model, timeout), nil
	case config.ProviderOpenRouter:
		return NewOpenRouter(baseURL, apiKey, model, timeout), nil
	case config.ProviderAnthropic:
		return NewAnthropic(baseURL, apiKey, model, timeout), nil
	case config.ProviderCustom:
		return NewCustomOpenAI(baseURL, apiKey, model, timeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}
