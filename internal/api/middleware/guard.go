package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
	"github.com/realestate/portal/internal/metrics"
)

// Guard gates a view behind route's requirements. Visitors who may not
// open it get a 302 to the login view or to the home view.
func Guard(sessions ports.Sessions, route domain.Route) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := domain.Evaluate(sessions.Access(c.Request().Context()), route)
			metrics.RouteDecisionsTotal.WithLabelValues(decision.String()).Inc()
			if decision != domain.Allow {
				return c.Redirect(http.StatusFound, decision.Target())
			}
			return next(c)
		}
	}
}
