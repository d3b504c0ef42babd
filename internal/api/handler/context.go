package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/realestate/portal/internal/api/middleware"
)

// respond writes body as JSON unless a hard navigation was requested while
// serving c, in which case the navigation wins.
func respond(c echo.Context, code int, body any) error {
	if target, ok := middleware.PendingNavigation(c); ok {
		return c.Redirect(http.StatusSeeOther, target)
	}
	return c.JSON(code, body)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindValid binds the request into v and runs the registered validator.
func bindValid(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(v)
}
