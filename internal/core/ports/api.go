package ports

import (
	"context"

	"github.com/realestate/portal/internal/core/domain"
)

// AuthAPI covers authentication and the caller's own profile.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error)
	Logout(ctx context.Context)
}

// AdminAPI covers account management. The server enforces the admin role.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ToggleUserStatus(ctx context.Context, id int64) (*domain.User, error)
}

// PropertyAPI covers listings, favorites and agent contact.
// The two listing reads never fail: they return a degraded Listing instead.
type PropertyAPI interface {
	ListProperties(ctx context.Context, filter domain.PropertyFilter) domain.Listing[domain.Property]
	Property(ctx context.Context, id int64) (*domain.Property, error)
	Favorites(ctx context.Context) domain.Listing[domain.Favorite]
	AddFavorite(ctx context.Context, id int64) error
	RemoveFavorite(ctx context.Context, id int64) error
	ContactAgent(ctx context.Context, id int64, message string) error
	Purchase(ctx context.Context, id int64, req domain.PurchaseRequest) error
}
