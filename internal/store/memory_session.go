package store

import (
	"context"
	"sync"

	"github.com/eggjam/eggjam-go/internal/model"
)

// MemorySessionStore keeps sessions in a process-local map. Histories are
// lost on restart; suitable for tests and single-node development.
type MemorySessionStore struct {
	sessions map[string]*model.SessionHistory
	mu       sync.RWMutex
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*model.SessionHistory),
	}
}

// Get returns a copy of the stored session so callers can mutate it freely
// before writing it back with Put.
func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*model.SessionHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// Put stores a copy of the session under its session id.
func (s *MemorySessionStore) Put(_ context.Context, session *model.SessionHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = cloneSession(session)
	return nil
}

// Delete removes a session. Deleting an unknown id returns ErrSessionNotFound.
func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// Count returns the number of live sessions.
func (s *MemorySessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func cloneSession(session *model.SessionHistory) *model.SessionHistory {
	clone := *session
	clone.Messages = make([]model.Message, len(session.Messages))
	copy(clone.Messages, session.Messages)
	return &clone
}
