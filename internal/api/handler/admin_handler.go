package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
)

// AdminHandler serves the account management views. Routes are gated by
// the admin guard; the server enforces the role again.
type AdminHandler struct {
	api ports.AdminAPI
}

func NewAdminHandler(api ports.AdminAPI) *AdminHandler {
	return &AdminHandler{api: api}
}

type usersResponse struct {
	Users []domain.User `json:"users"`
	Count int           `json:"count"`
	Query string        `json:"query,omitempty"`
	domain.UserStats
}

// ListUsers handles GET /admin/users. The optional q parameter narrows the
// returned users; the counts always cover every account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.api.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	matched := domain.FilterUsers(users, q)
	return respond(c, http.StatusOK, usersResponse{
		Users:     matched,
		Count:     len(matched),
		Query:     q,
		UserStats: domain.SummarizeUsers(users),
	})
}

// UpdateUser handles PUT /admin/users/:id.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var upd domain.UserUpdate
	if err := bindValid(c, &upd); err != nil {
		return err
	}
	u, err := h.api.UpdateUser(c.Request().Context(), id, upd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, u)
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.api.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleStatus handles PATCH /admin/users/:id/toggle-status.
func (h *AdminHandler) ToggleStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := h.api.ToggleUserStatus(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, u)
}
