// Package storagetest holds the behavioural contract every core.TurnStore
// implementation is tested against.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/sandevgo/raider/internal/core"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) core.TurnStore

func Run(t *testing.T, newStore Factory) {
	t.Run("empty subject loads empty slice", func(t *testing.T) {
		s := newStore(t)
		turns, err := s.Load(context.Background(), "Physics")
		require.NoError(t, err)
		assert.NotNil(t, turns)
		assert.Empty(t, turns)
	})

	t.Run("append rejects empty subject", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		err := s.Append(ctx, "", "q", "a")
		assert.ErrorIs(t, err, core.ErrInvalidRequest)

		turns, err := s.Load(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, turns)
	})

	t.Run("append order preserved", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for i := 1; i <= 5; i++ {
			require.NoError(t, s.Append(ctx, "Math", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)))
		}

		turns, err := s.Load(ctx, "Math")
		require.NoError(t, err)
		require.Len(t, turns, 5)
		for i, turn := range turns {
			assert.Equal(t, "Math", turn.Subject)
			assert.Equal(t, fmt.Sprintf("q%d", i+1), turn.UserText)
			assert.Equal(t, fmt.Sprintf("a%d", i+1), turn.BotText)
			assert.Equal(t, int64(i+1), turn.Seq)
		}
	})

	t.Run("interleaved subjects never mix", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Append(ctx, "Math", "m1", "r1"))
		require.NoError(t, s.Append(ctx, "Physics", "p1", "r1"))
		require.NoError(t, s.Append(ctx, "Math", "m2", "r2"))
		require.NoError(t, s.Append(ctx, "math", "lower", "r"))
		require.NoError(t, s.Append(ctx, "Physics", "p2", "r2"))

		math, err := s.Load(ctx, "Math")
		require.NoError(t, err)
		assert.Equal(t, []string{"m1", "m2"}, userTexts(math))

		physics, err := s.Load(ctx, "Physics")
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, userTexts(physics))

		lower, err := s.Load(ctx, "math")
		require.NoError(t, err)
		assert.Equal(t, []string{"lower"}, userTexts(lower))
	})

	t.Run("load is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Append(ctx, "Chemistry", "What is a mole?", "6.022e23 things."))

		first, err := s.Load(ctx, "Chemistry")
		require.NoError(t, err)
		second, err := s.Load(ctx, "Chemistry")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("round trip is verbatim", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		user := "  multi\nline 'quoted' \"text\" 世界 🌍  "
		bot := "User: not a real prefix\nBot: neither"
		require.NoError(t, s.Append(ctx, "Unicode", user, bot))
		require.NoError(t, s.Append(ctx, "Unicode", "", ""))

		turns, err := s.Load(ctx, "Unicode")
		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, user, turns[0].UserText)
		assert.Equal(t, bot, turns[0].BotText)
		assert.Equal(t, "", turns[1].UserText)
		assert.Equal(t, "", turns[1].BotText)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Append(ctx, "Art", "q", "a"))

		turns, err := s.Load(ctx, "Art")
		require.NoError(t, err)
		turns[0].BotText = "mutated"

		again, err := s.Load(ctx, "Art")
		require.NoError(t, err)
		assert.Equal(t, "a", again[0].BotText)
	})

	t.Run("concurrent appends form a consistent prefix", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const writers, perWriter = 4, 10
		var wg conc.WaitGroup
		var mu sync.Mutex
		var loadErrs []error

		for w := 0; w < writers; w++ {
			w := w
			wg.Go(func() {
				for i := 0; i < perWriter; i++ {
					if err := s.Append(ctx, "Race", fmt.Sprintf("w%d-%d", w, i), "ok"); err != nil {
						mu.Lock()
						loadErrs = append(loadErrs, err)
						mu.Unlock()
					}
				}
			})
			wg.Go(func() {
				turns, err := s.Load(ctx, "Race")
				if err == nil {
					err = checkPrefix(turns)
				}
				if err != nil {
					mu.Lock()
					loadErrs = append(loadErrs, err)
					mu.Unlock()
				}
			})
		}
		wg.Go(func() {
			_ = s.Append(ctx, "Other", "x", "y")
		})
		wg.Wait()

		require.Empty(t, loadErrs)

		turns, err := s.Load(ctx, "Race")
		require.NoError(t, err)
		assert.Len(t, turns, writers*perWriter)
		assert.NoError(t, checkPrefix(turns))
	})
}

func userTexts(turns []core.Turn) []string {
	out := make([]string, 0, len(turns))
	for _, t := range turns {
		out = append(out, t.UserText)
	}
	return out
}

// checkPrefix verifies sequence numbers are 1..n with no gaps or torn rows.
func checkPrefix(turns []core.Turn) error {
	for i, t := range turns {
		if t.Seq != int64(i+1) {
			return fmt.Errorf("turn %d has seq %d", i, t.Seq)
		}
		if t.BotText != "ok" {
			return fmt.Errorf("turn %d torn: %q", i, t.BotText)
		}
	}
	return nil
}
