package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/portal/internal/core/domain"
)

// ProfileFlow reads and edits the caller's own profile.
type ProfileFlow interface {
	Load(ctx context.Context) (*domain.User, error)
	Update(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error)
}

type ProfileHandler struct {
	flow ProfileFlow
}

func NewProfileHandler(flow ProfileFlow) *ProfileHandler {
	return &ProfileHandler{flow: flow}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	u, err := h.flow.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, u)
}

// Update handles PUT /profile. Validation runs inside the flow.
func (h *ProfileHandler) Update(c echo.Context) error {
	var upd domain.ProfileUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	u, err := h.flow.Update(c.Request().Context(), upd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, u)
}
