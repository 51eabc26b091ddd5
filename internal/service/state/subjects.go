// Package state holds per-session front-end state.
package state

import "sync"

// Subjects remembers the selected subject of every chat session. The turn
// store keeps the history; this only maps a chat to a subject.
type Subjects struct {
	mu       sync.RWMutex
	current  map[string]string
	fallback string
}

// NewSubjects returns an empty registry. A non-empty fallback is used for
// sessions that never chose a subject.
func NewSubjects(fallback string) *Subjects {
	return &Subjects{
		current:  make(map[string]string),
		fallback: fallback,
	}
}

func (s *Subjects) Subject(sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if subject, ok := s.current[sessionID]; ok {
		return subject, true
	}
	return s.fallback, s.fallback != ""
}

func (s *Subjects) SetSubject(sessionID, subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[sessionID] = subject
}
