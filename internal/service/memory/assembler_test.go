package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/raider/internal/core"
	memstore "github.com/sandevgo/raider/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (f failingStore) Append(context.Context, string, string, string) error { return f.err }
func (f failingStore) Load(context.Context, string) ([]core.Turn, error)    { return nil, f.err }

func TestAssembler_EmptyHistory(t *testing.T) {
	a := NewAssembler(memstore.NewStore(), nil)

	got, err := a.Assemble(context.Background(), "Physics", "Physics")
	require.NoError(t, err)
	assert.Equal(t, "You are an expert on this subject: Physics.", got)
}

func TestAssembler_FullHistory(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	require.NoError(t, store.Append(ctx, "Physics", "What is inertia?", "Resistance to change in motion."))
	require.NoError(t, store.Append(ctx, "Physics", "Give an example.", "A passenger lurching forward."))
	require.NoError(t, store.Append(ctx, "Math", "2+2?", "4"))

	got, err := NewAssembler(store, nil).Assemble(ctx, "Physics", "")
	require.NoError(t, err)

	want := "You are an expert on this subject: Physics.\n" +
		"User: What is inertia?\n" +
		"Bot: Resistance to change in motion.\n" +
		"User: Give an example.\n" +
		"Bot: A passenger lurching forward."
	assert.Equal(t, want, got)
}

func TestAssembler_DescriptionOverridesSubject(t *testing.T) {
	got, err := NewAssembler(memstore.NewStore(), nil).Assemble(context.Background(), "chem-101", "introductory chemistry")
	require.NoError(t, err)
	assert.Equal(t, "You are an expert on this subject: introductory chemistry.", got)
}

func TestAssembler_StoreErrorUnchanged(t *testing.T) {
	storeErr := core.StoreError("query turns", errors.New("database is locked"))

	_, err := NewAssembler(failingStore{err: storeErr}, nil).Assemble(context.Background(), "Math", "Math")
	assert.Same(t, storeErr, err)
	assert.True(t, errors.Is(err, core.ErrStoreUnavailable))
}

func TestAssembler_AppliesPolicy(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	for _, q := range []string{"one", "two", "three"} {
		require.NoError(t, store.Append(ctx, "Math", q, q+"!"))
	}

	got, err := NewAssembler(store, LastTurns(1)).Assemble(ctx, "Math", "Math")
	require.NoError(t, err)
	assert.Equal(t, "You are an expert on this subject: Math.\nUser: three\nBot: three!", got)
}

func TestAssembler_VerbatimText(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	require.NoError(t, store.Append(ctx, "Lit", "line1\nline2", "  padded  "))

	got, err := NewAssembler(store, nil).Assemble(ctx, "Lit", "Lit")
	require.NoError(t, err)
	assert.Equal(t, "You are an expert on this subject: Lit.\nUser: line1\nline2\nBot:   padded  ", got)
}
