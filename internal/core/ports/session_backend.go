package ports

import (
	"context"
	"errors"

	"github.com/realestate/portal/internal/core/domain"
)

// ErrNoSession is returned by a SessionBackend when nothing is stored.
var ErrNoSession = errors.New("no session stored")

// SessionBackend persists the session as a single record.
// Save and Clear must be atomic: a reader never observes a token without
// its user or the reverse.
type SessionBackend interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}

// TokenSource yields the bearer token to attach to an outgoing request.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Navigator performs hard navigations requested by the session layer.
type Navigator interface {
	ToLogin(ctx context.Context)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context)

func (f NavigatorFunc) ToLogin(ctx context.Context) { f(ctx) }
