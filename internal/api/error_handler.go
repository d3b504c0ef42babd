package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/api/middleware"
	"github.com/realestate/portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Lets a pending hard navigation (session teardown) win over the error.
//   - Maps the domain error taxonomy to HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if target, ok := middleware.PendingNavigation(c); ok {
			_ = c.Redirect(http.StatusSeeOther, target)
			return
		}
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotAuthenticated) {
			_ = c.Redirect(http.StatusSeeOther, domain.PathLogin)
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var (
		ve *domain.ValidationError
		se *domain.ServerError
		ne *domain.NetworkError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: ve.Fields}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.UserMessage(err)}
	case errors.As(err, &se):
		// Client errors from the API are the caller's to fix; anything
		// else is an upstream failure.
		if se.Status >= 400 && se.Status < 500 {
			return se.Status, errorResponse{Error: se.Message}
		}
		return http.StatusBadGateway, errorResponse{Error: se.Message}
	case errors.As(err, &ne):
		if ne.Timeout {
			return http.StatusGatewayTimeout, errorResponse{Error: domain.GenericFailureMessage}
		}
		return http.StatusBadGateway, errorResponse{Error: domain.GenericFailureMessage}
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusBadGateway, errorResponse{Error: "Token manquant dans la réponse"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
