// Package memory keeps the session in process memory. Nothing survives a
// restart; it backs tests and throwaway runs.
package memory

import (
	"context"
	"sync"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
)

type SessionStore struct {
	mu   sync.RWMutex
	sess *domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return nil, ports.ErrNoSession
	}
	return clone(s.sess), nil
}

func (s *SessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = clone(sess)
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}

func (s *SessionStore) Ping(_ context.Context) error { return nil }

func clone(sess *domain.Session) *domain.Session {
	c := *sess
	c.User = sess.User.Clone()
	return &c
}
