package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/service"
)

// AuthFlow is the login, sign-up and logout logic the handler drives.
type AuthFlow interface {
	Login(ctx context.Context, creds domain.Credentials) (service.LoginOutcome, error)
	Register(ctx context.Context, reg domain.Registration) (service.RegisterOutcome, error)
	Logout(ctx context.Context)
}

type AuthHandler struct {
	flow AuthFlow
}

func NewAuthHandler(flow AuthFlow) *AuthHandler {
	return &AuthHandler{flow: flow}
}

type authResponse struct {
	Status   string       `json:"status,omitempty"`
	Redirect string       `json:"redirect"`
	User     *domain.User `json:"user,omitempty"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out, err := h.flow.Login(c.Request().Context(), creds)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, authResponse{Redirect: out.Redirect, User: out.User})
}

type passwordStrength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

func strengthOf(pw string) passwordStrength {
	score, label := service.PasswordStrength(pw)
	return passwordStrength{Score: score, Label: label}
}

type registerErrorResponse struct {
	Error            string              `json:"error"`
	Fields           []domain.FieldError `json:"fields"`
	PasswordStrength passwordStrength    `json:"passwordStrength"`
}

// Register handles POST /register. Validation runs inside the flow; when
// the password is rejected the answer also carries its strength.
func (h *AuthHandler) Register(c echo.Context) error {
	var reg domain.Registration
	if err := c.Bind(&reg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out, err := h.flow.Register(c.Request().Context(), reg)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) && ve.Has("password") {
			return respond(c, http.StatusBadRequest, registerErrorResponse{
				Error:            ve.Error(),
				Fields:           ve.Fields,
				PasswordStrength: strengthOf(reg.Password),
			})
		}
		return err
	}
	return respond(c, http.StatusCreated, authResponse{Status: out.Status.String(), Redirect: out.Redirect, User: out.User})
}

type strengthRequest struct {
	Password string `json:"password"`
}

// Strength handles POST /register/strength, the live meter of the sign-up form.
func (h *AuthHandler) Strength(c echo.Context) error {
	var req strengthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return respond(c, http.StatusOK, strengthOf(req.Password))
}

// Logout handles POST /logout. The session layer requests the navigation
// to the login view, so the response is always a redirect.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.flow.Logout(c.Request().Context())
	return respond(c, http.StatusOK, authResponse{Redirect: domain.PathLogin})
}
