package dialogue

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// subjectLocks hands out one weight-1 semaphore per subject. Entries are
// reference counted and removed when the last holder or waiter leaves.
type subjectLocks struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newSubjectLocks() *subjectLocks {
	return &subjectLocks{locks: make(map[string]*refLock)}
}

// Lock waits for the subject's lock until ctx is done.
func (l *subjectLocks) Lock(ctx context.Context, subject string) (unlock func(), err error) {
	l.mu.Lock()
	m, ok := l.locks[subject]
	if !ok {
		m = &refLock{sem: semaphore.NewWeighted(1)}
		l.locks[subject] = m
	}
	m.refs++
	l.mu.Unlock()

	if err := m.sem.Acquire(ctx, 1); err != nil {
		l.release(subject, m)
		return nil, err
	}
	return func() {
		m.sem.Release(1)
		l.release(subject, m)
	}, nil
}

func (l *subjectLocks) release(subject string, m *refLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m.refs--
	if m.refs == 0 {
		delete(l.locks, subject)
	}
}

func (l *subjectLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
