package ports

import (
	"context"

	"github.com/realestate/portal/internal/core/domain"
)

// Sessions is the session store as seen by flows, guards and handlers.
type Sessions interface {
	TokenSource
	SetAuth(ctx context.Context, token string, user *domain.User) error
	User(ctx context.Context) (*domain.User, bool)
	Current(ctx context.Context) (*domain.Session, bool)
	IsAuthenticated(ctx context.Context) bool
	IsAdmin(ctx context.Context) bool
	Access(ctx context.Context) domain.Access
	UpdateUser(ctx context.Context, user *domain.User) error
	Logout(ctx context.Context)
}
