package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
)

// SessionHandler exposes who is logged in, for the views to render the
// navigation bar.
type SessionHandler struct {
	sessions ports.Sessions
}

func NewSessionHandler(sessions ports.Sessions) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	Authenticated  bool         `json:"authenticated"`
	Admin          bool         `json:"admin"`
	User           *domain.User `json:"user,omitempty"`
	TokenExpiresAt *time.Time   `json:"tokenExpiresAt,omitempty"`
}

// Get handles GET /session. The token itself is never returned.
func (h *SessionHandler) Get(c echo.Context) error {
	sess, ok := h.sessions.Current(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	resp := sessionResponse{Authenticated: true, Admin: sess.User.IsAdmin(), User: sess.User}
	if exp, ok := sess.TokenExpiry(); ok {
		resp.TokenExpiresAt = &exp
	}
	return c.JSON(http.StatusOK, resp)
}
