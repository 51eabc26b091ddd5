// Package storage builds the configured core.TurnStore.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/storage/cache"
	"github.com/sandevgo/raider/internal/storage/memory"
	"github.com/sandevgo/raider/internal/storage/postgres"
	"github.com/sandevgo/raider/internal/storage/sqlite"
	"github.com/sandevgo/raider/pkg/log"
	"github.com/sandevgo/raider/pkg/retry"
)

// Store is what the rest of the application needs from a turn store.
type Store interface {
	core.TurnStore
	core.SubjectLister
	Close() error
}

type Config interface {
	core.AppConfig
	core.ContextConfig
}

// NewTurnStore opens the store selected by cfg and, when enabled, wraps it
// with the history cache.
func NewTurnStore(ctx context.Context, cfg Config) (Store, error) {
	logger := log.FromCtx(ctx)

	var (
		store Store
		err   error
	)

	switch cfg.GetStoreDriver() {
	case config.StoreMemory:
		store = memory.NewStore()
	case config.StorePostgres:
		store, err = connectPostgres(ctx, cfg.GetDatabaseURL(), retry.NewDefaultConfig())
	case config.StoreSQLite, "":
		var db *sql.DB
		db, err = sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err == nil {
			store = &sqliteStore{TurnsRepo: sqlite.NewTurnsRepo(db), db: db}
		}
	default:
		err = fmt.Errorf("unknown store driver: %q", cfg.GetStoreDriver())
	}
	if err != nil {
		return nil, err
	}

	logger.Info().Str("driver", cfg.GetStoreDriver()).Msg("turn store ready")

	if cfg.IsCacheEnabled() {
		logger.Debug().Int("size", cfg.GetCacheSize()).Msg("history cache enabled")
		return cache.New(store, cfg.GetCacheSize()), nil
	}
	return store, nil
}

func connectPostgres(ctx context.Context, url string, rc *retry.Config) (*postgres.Store, error) {
	logger := log.FromCtx(ctx)

	onRetry := rc.OnRetry
	rc.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warn().Err(err).Int("attempt", attempt+1).Dur("delay", delay).Msg("postgres not ready, retrying")
		if onRetry != nil {
			onRetry(attempt, err, delay)
		}
	}

	var store *postgres.Store
	err := retry.NewRetrier(rc).Do(ctx, func(ctx context.Context) error {
		s, err := postgres.NewStore(ctx, url)
		if errors.Is(err, postgres.ErrInvalidURL) {
			return retry.Permanent(err)
		}
		if err != nil {
			return err
		}
		store = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}
	return store, nil
}

type sqliteStore struct {
	*sqlite.TurnsRepo
	db *sql.DB
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
