package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/raider/pkg/log"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type AppConfig struct {
	RuntimePath string `env:"RAIDER_RUNTIME_PATH" envDefault:".raider"`

	// Turn store selection
	StoreDriver string `env:"RAIDER_STORE" envDefault:"sqlite"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Transport Flags
	EnableHTTP     bool `env:"ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Context Management. Zero means unbounded.
	MaxTurns  int  `env:"CONTEXT_MAX_TURNS" envDefault:"0"`
	MaxTokens int  `env:"CONTEXT_MAX_TOKENS" envDefault:"0"`
	Cache     bool `env:"CONTEXT_CACHE" envDefault:"false"`
	CacheSize int  `env:"CONTEXT_CACHE_SIZE" envDefault:"256"`

	// Dialogue
	SubjectLock    bool          `env:"SUBJECT_LOCK" envDefault:"false"`
	PersistTimeout time.Duration `env:"PERSIST_TIMEOUT" envDefault:"10s"`
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse app config: %w", err)
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))

	switch c.StoreDriver {
	case StoreSQLite, StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("unknown store driver: %q", c.StoreDriver)
	}

	if c.MaxTurns < 0 || c.MaxTokens < 0 {
		return nil, fmt.Errorf("context limits must not be negative")
	}
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "raider.db")
}

func (c AppConfig) GetStoreDriver() string {
	return c.StoreDriver
}

func (c AppConfig) GetDatabaseURL() string {
	return c.DatabaseURL
}

func (c AppConfig) GetMaxTurns() int {
	return c.MaxTurns
}

func (c AppConfig) GetMaxTokens() int {
	return c.MaxTokens
}

func (c AppConfig) IsCacheEnabled() bool {
	return c.Cache
}

func (c AppConfig) GetCacheSize() int {
	return c.CacheSize
}

func (c AppConfig) IsSubjectLockEnabled() bool {
	return c.SubjectLock
}

func (c AppConfig) GetPersistTimeout() time.Duration {
	return c.PersistTimeout
}

func (c AppConfig) IsHTTPEnabled() bool {
	return c.EnableHTTP
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
