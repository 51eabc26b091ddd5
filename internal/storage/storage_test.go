package storage

import (
	"context"
	"testing"
	"time"

	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/internal/storage/cache"
	"github.com/sandevgo/raider/internal/storage/memory"
	"github.com/sandevgo/raider/internal/storage/postgres"
	"github.com/sandevgo/raider/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, driver string, cached bool) *config.AppConfig {
	return &config.AppConfig{
		RuntimePath:    t.TempDir(),
		StoreDriver:    driver,
		Cache:          cached,
		CacheSize:      8,
		PersistTimeout: time.Second,
	}
}

func TestNewTurnStore_SQLite(t *testing.T) {
	ctx := context.Background()
	store, err := NewTurnStore(ctx, testConfig(t, config.StoreSQLite, false))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(ctx, "Math", "q", "a"))
	turns, err := store.Load(ctx, "Math")
	require.NoError(t, err)
	assert.Len(t, turns, 1)

	subjects, err := store.Subjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, subjects)
}

func TestNewTurnStore_MemoryCached(t *testing.T) {
	store, err := NewTurnStore(context.Background(), testConfig(t, config.StoreMemory, true))
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &cache.Store{}, store)
}

func TestNewTurnStore_Memory(t *testing.T) {
	store, err := NewTurnStore(context.Background(), testConfig(t, config.StoreMemory, false))
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
}

func TestNewTurnStore_UnknownDriver(t *testing.T) {
	_, err := NewTurnStore(context.Background(), testConfig(t, "mongo", false))
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestConnectPostgres_InvalidURLIsNotRetried(t *testing.T) {
	rc := retry.NewDefaultConfig()
	rc.InitialDelay = time.Millisecond
	retries := 0
	rc.OnRetry = func(int, error, time.Duration) { retries++ }

	_, err := connectPostgres(context.Background(), "postgres://raider:pw@localhost:notaport/raider", rc)
	require.Error(t, err)
	assert.ErrorIs(t, err, postgres.ErrInvalidURL)
	assert.Zero(t, retries)
}
