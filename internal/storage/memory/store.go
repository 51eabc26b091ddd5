// Package memory keeps turns in process memory. Nothing survives a restart,
// so it suits tests and throwaway sessions.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sandevgo/raider/internal/core"
)

type shard struct {
	mu    sync.RWMutex
	turns []core.Turn
}

// Store partitions turns per subject; each subject has its own lock so
// appends to different subjects only contend on the shard lookup.
type Store struct {
	mu     sync.RWMutex
	shards map[string]*shard
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		shards: make(map[string]*shard),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) shard(subject string, create bool) *shard {
	s.mu.RLock()
	sh, ok := s.shards[subject]
	s.mu.RUnlock()
	if ok || !create {
		return sh
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sh, ok = s.shards[subject]; !ok {
		sh = &shard{}
		s.shards[subject] = sh
	}
	return sh
}

func (s *Store) Append(ctx context.Context, subject, userText, botText string) error {
	if subject == "" {
		return core.InvalidRequest("turn subject is empty")
	}
	if err := ctx.Err(); err != nil {
		return core.StoreError("append turn", err)
	}

	sh := s.shard(subject, true)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.turns = append(sh.turns, core.Turn{
		Subject:   subject,
		UserText:  userText,
		BotText:   botText,
		Seq:       int64(len(sh.turns) + 1),
		CreatedAt: s.now(),
	})
	return nil
}

func (s *Store) Load(ctx context.Context, subject string) ([]core.Turn, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.StoreError("load turns", err)
	}

	sh := s.shard(subject, false)
	if sh == nil {
		return []core.Turn{}, nil
	}

	sh.mu.RLock()
	defer sh.mu.RUnlock()
	out := make([]core.Turn, len(sh.turns))
	copy(out, sh.turns)
	return out, nil
}

func (s *Store) Subjects(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.shards))
	for subject := range s.shards {
		out = append(out, subject)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) Close() error { return nil }
