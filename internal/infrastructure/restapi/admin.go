package restapi

import (
	"context"
	"net/http"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
	"github.com/realestate/portal/internal/infrastructure/httpclient"
)

const adminUsersPath = "/admin/users"

var _ ports.AdminAPI = (*AdminClient)(nil)

// AdminClient manages accounts. The server enforces the admin role; a
// non-admin caller gets whatever error the server returns.
type AdminClient struct {
	api Requester
}

func NewAdminClient(api Requester) *AdminClient {
	return &AdminClient{api: api}
}

func (c *AdminClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.api.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: adminUsersPath}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.User{}
	}
	return out, nil
}

func (c *AdminClient) UpdateUser(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	var out domain.User
	req := httpclient.Request{
		Method:   http.MethodPut,
		Path:     idPath(adminUsersPath, id, ""),
		Endpoint: adminUsersPath + "/{id}",
		Body:     upd,
	}
	if err := c.api.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AdminClient) DeleteUser(ctx context.Context, id int64) error {
	return c.api.Do(ctx, httpclient.Request{
		Method:   http.MethodDelete,
		Path:     idPath(adminUsersPath, id, ""),
		Endpoint: adminUsersPath + "/{id}",
	}, nil)
}

func (c *AdminClient) ToggleUserStatus(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	req := httpclient.Request{
		Method:   http.MethodPatch,
		Path:     idPath(adminUsersPath, id, "/toggle-status"),
		Endpoint: adminUsersPath + "/{id}/toggle-status",
	}
	if err := c.api.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
