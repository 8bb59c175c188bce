package memory

import (
	"context"
	"sync"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionStore,
// useful for tests and throwaway runs.
type SessionStore struct {
	mu      sync.RWMutex
	session domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Read(_ context.Context) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, nil
}
