package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*TurnsRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "raider.db")
	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTurnsRepo(db), path
}

func TestTurnsRepo_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) core.TurnStore {
		repo, _ := newTestRepo(t)
		return repo
	})
}

func TestTurnsRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepo(t)

	require.NoError(t, repo.Append(ctx, "Physics", "What is inertia?", "Resistance to change in motion."))
	require.NoError(t, repo.db.Close())

	db, err := NewDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	turns, err := NewTurnsRepo(db).Load(ctx, "Physics")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "What is inertia?", turns[0].UserText)
	assert.False(t, turns[0].CreatedAt.IsZero())
}

func TestTurnsRepo_Subjects(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Append(ctx, "Physics", "q", "a"))
	require.NoError(t, repo.Append(ctx, "Math", "q", "a"))
	require.NoError(t, repo.Append(ctx, "Physics", "q2", "a2"))

	subjects, err := repo.Subjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Physics"}, subjects)
}

func TestTurnsRepo_ClosedDBIsStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	require.NoError(t, repo.db.Close())

	_, err := repo.Load(ctx, "Physics")
	assert.True(t, errors.Is(err, core.ErrStoreUnavailable), "got %v", err)

	err = repo.Append(ctx, "Physics", "q", "a")
	assert.True(t, errors.Is(err, core.ErrStoreUnavailable), "got %v", err)
}
