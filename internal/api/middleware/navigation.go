package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
)

type navKey struct{}

// Navigation records a hard navigation requested while a request is being
// served. The first target wins.
type Navigation struct {
	mu     sync.Mutex
	target string
}

func (n *Navigation) set(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.target == "" {
		n.target = target
	}
}

// Target returns the pending navigation, if any.
func (n *Navigation) Target() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target, n.target != ""
}

// WithNavigation returns ctx carrying a fresh recorder.
func WithNavigation(ctx context.Context) (context.Context, *Navigation) {
	n := &Navigation{}
	return context.WithValue(ctx, navKey{}, n), n
}

// NavigationFrom returns the recorder installed on ctx, or nil.
func NavigationFrom(ctx context.Context) *Navigation {
	n, _ := ctx.Value(navKey{}).(*Navigation)
	return n
}

// PendingNavigation reports the hard navigation requested during c, if any.
func PendingNavigation(c echo.Context) (string, bool) {
	if n := NavigationFrom(c.Request().Context()); n != nil {
		return n.Target()
	}
	return "", false
}

// Navigator sends the current request to the login view. Outside a request
// it does nothing.
type Navigator struct{}

var _ ports.Navigator = Navigator{}

func (Navigator) ToLogin(ctx context.Context) {
	if n := NavigationFrom(ctx); n != nil {
		n.set(domain.PathLogin)
	}
}

// Navigate installs a recorder on every request. When a navigation is
// pending and the handler has not written a response, it answers with
// 303 See Other to the recorded target.
func Navigate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, nav := WithNavigation(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if c.Response().Committed {
				return err
			}
			if target, ok := nav.Target(); ok {
				return c.Redirect(http.StatusSeeOther, target)
			}
			return err
		}
	}
}
