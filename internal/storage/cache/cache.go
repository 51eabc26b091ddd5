// Package cache decorates a core.TurnStore with a bounded LRU of loaded
// histories. The wrapped store stays the source of truth: a subject's entry
// is dropped on every append to that subject.
package cache

import (
	"container/list"
	"context"
	"io"
	"sync"

	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/pkg/log"
)

const DefaultSize = 256

type entry struct {
	subject string
	turns   []core.Turn
}

type Store struct {
	inner core.TurnStore
	size  int

	mu    sync.Mutex
	ll    *list.List
	items map[string]*list.Element
	// versions counts appends per subject. A load only fills the cache when
	// no append finished while it was reading.
	versions map[string]uint64

	hits, misses uint64
}

func New(inner core.TurnStore, size int) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	return &Store{
		inner:    inner,
		size:     size,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
		versions: make(map[string]uint64),
	}
}

func (s *Store) Append(ctx context.Context, subject, userText, botText string) error {
	err := s.inner.Append(ctx, subject, userText, botText)
	// A failed append may still have reached the medium, so drop either way.
	s.Invalidate(subject)
	return err
}

func (s *Store) Load(ctx context.Context, subject string) ([]core.Turn, error) {
	s.mu.Lock()
	if el, ok := s.items[subject]; ok {
		s.ll.MoveToFront(el)
		s.hits++
		out := clone(el.Value.(*entry).turns)
		s.mu.Unlock()
		return out, nil
	}
	s.misses++
	version := s.versions[subject]
	s.mu.Unlock()

	turns, err := s.inner.Load(ctx, subject)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.versions[subject] == version {
		s.put(subject, clone(turns))
	}
	s.mu.Unlock()

	log.FromCtx(ctx).Debug().Str("subject", subject).Msg("history cache miss")
	return turns, nil
}

// Invalidate drops the cached history of subject.
func (s *Store) Invalidate(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[subject]++
	if el, ok := s.items[subject]; ok {
		s.ll.Remove(el)
		delete(s.items, subject)
	}
}

// Stats reports cache hits and misses since creation.
func (s *Store) Stats() (hits, misses uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

func (s *Store) Subjects(ctx context.Context) ([]string, error) {
	if l, ok := s.inner.(core.SubjectLister); ok {
		return l.Subjects(ctx)
	}
	return nil, nil
}

func (s *Store) Close() error {
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) put(subject string, turns []core.Turn) {
	if el, ok := s.items[subject]; ok {
		el.Value.(*entry).turns = turns
		s.ll.MoveToFront(el)
		return
	}
	s.items[subject] = s.ll.PushFront(&entry{subject: subject, turns: turns})
	for s.ll.Len() > s.size {
		oldest := s.ll.Back()
		s.ll.Remove(oldest)
		delete(s.items, oldest.Value.(*entry).subject)
	}
}

func clone(turns []core.Turn) []core.Turn {
	out := make([]core.Turn, len(turns))
	copy(out, turns)
	return out
}
