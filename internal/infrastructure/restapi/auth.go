package restapi

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
	"github.com/realestate/portal/internal/infrastructure/httpclient"
)

var _ ports.AuthAPI = (*AuthClient)(nil)

// AuthClient talks to /auth, /user/profile and /logout.
type AuthClient struct {
	api Requester
	log zerolog.Logger
}

func NewAuthClient(api Requester, log zerolog.Logger) *AuthClient {
	return &AuthClient{api: api, log: log}
}

// Login exchanges credentials for a token. Bad credentials surface as
// *domain.AuthError.
func (c *AuthClient) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	var out domain.LoginResult
	if err := c.api.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: "/auth/login", Body: creds}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. The form is sent whole; the server checks
// the confirmation again.
func (c *AuthClient) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	var out domain.User
	if err := c.api.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: "/auth/register", Body: reg}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthClient) Profile(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.api.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/user/profile"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthClient) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	var out domain.User
	if err := c.api.Do(ctx, httpclient.Request{Method: http.MethodPut, Path: "/user/profile", Body: upd}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the server. Failures are logged and otherwise ignored.
func (c *AuthClient) Logout(ctx context.Context) {
	if err := c.api.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: "/logout"}, nil); err != nil {
		c.log.Debug().Err(err).Msg("server logout failed, ignoring")
	}
}
