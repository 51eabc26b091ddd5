package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/observability"
	"github.com/sandevgo/raider/internal/providers/llm"
	"github.com/sandevgo/raider/internal/service/chat"
	"github.com/sandevgo/raider/internal/service/command"
	"github.com/sandevgo/raider/internal/service/dialogue"
	"github.com/sandevgo/raider/internal/service/memory"
	"github.com/sandevgo/raider/internal/service/state"
	"github.com/sandevgo/raider/internal/storage"
	"github.com/sandevgo/raider/internal/storage/cache"
	"github.com/sandevgo/raider/pkg/log"
	"github.com/sandevgo/raider/pkg/srv"
)

// app is the wired dialogue core shared by every command.
type app struct {
	cfg      *config.AppConfig
	provider *config.ProviderConfig
	httpCfg  *config.HTTPConfig
	store    storage.Store
	metrics  *observability.Metrics
	ai       llm.Provider
	dialogue *dialogue.Service
	subjects *state.Subjects
	chat     *chat.Chat
}

func newApp(ctx context.Context, defaultSubject string) *app {
	logger := log.FromCtx(ctx)

	// init env
	if err := initEnv(ctx, config.GetEnvPath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	a := &app{
		cfg:      config.NewAppConfig(ctx),
		provider: config.NewProviderConfig(ctx),
		httpCfg:  config.NewHTTPConfig(ctx),
	}

	// 2. Storage
	store, err := storage.NewTurnStore(ctx, a.cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	a.store = store

	// 3. Observability
	a.metrics = observability.NewMetrics(a.httpCfg.GetMetricsNamespace(), logger)
	if cached, ok := store.(*cache.Store); ok {
		a.metrics.RegisterCacheStats(a.httpCfg.GetMetricsNamespace(), cached.Stats)
	}

	// 4. AI Provider
	a.ai, err = llm.NewProvider(ctx, a.provider)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 5. Context assembly and dialogue
	policy := memory.NewPolicy(a.cfg, tokenCounter(ctx, a.cfg))
	assembler := memory.NewAssembler(store, policy)
	a.dialogue = dialogue.NewService(a.cfg, assembler, a.ai, store, a.metrics)

	// 6. Front-end state and commands
	a.subjects = state.NewSubjects(defaultSubject)
	router := command.New(command.NewCommands(a.provider, a.subjects, store))
	a.chat = chat.New(router, a.subjects, a.dialogue)

	return a
}

// cleanup closes the store when the service group stops.
func (a *app) cleanup() srv.Service {
	return srv.NewCleanup(a.store.Close)
}

func tokenCounter(ctx context.Context, cfg *config.AppConfig) memory.TokenCounter {
	if cfg.GetMaxTokens() <= 0 {
		return nil
	}
	counter, err := memory.NewTiktokenCounter()
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("tiktoken unavailable, estimating tokens")
		return memory.ApproxCounter{}
	}
	return counter
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
