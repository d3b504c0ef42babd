package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/realestate/portal/internal/api/handler"
	"github.com/realestate/portal/internal/api/middleware"
	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
)

// Deps is everything the host needs to serve the portal views.
type Deps struct {
	Sessions   ports.Sessions
	Properties ports.PropertyAPI
	Admin      ports.AdminAPI
	Auth       handler.AuthFlow
	Profile    handler.ProfileFlow
	Favorites  handler.FavoritesFlow
	Inquiries  handler.InquiryFlow
	Validator  echo.Validator
	// Ready maps dependency names to readiness checks.
	Ready map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = d.Validator
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	// Host metrics live in their own registry; /metrics serves both.
	hostMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal_host",
		Registerer: hostMetrics,
	}))
	e.Use(middleware.Navigate())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	propertyHandler := handler.NewPropertyHandler(d.Properties, d.Favorites, d.Inquiries)
	profileHandler := handler.NewProfileHandler(d.Profile)
	adminHandler := handler.NewAdminHandler(d.Admin)
	sessionHandler := handler.NewSessionHandler(d.Sessions)

	// --- Auth ---
	e.POST(domain.RouteLogin.Path, authHandler.Login, middleware.Guard(d.Sessions, domain.RouteLogin))
	register := e.Group(domain.RouteRegister.Path, middleware.Guard(d.Sessions, domain.RouteRegister))
	register.POST("", authHandler.Register)
	register.POST("/strength", authHandler.Strength)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", sessionHandler.Get)

	// --- Public listing ---
	e.GET(domain.RouteHome.Path, propertyHandler.List, middleware.Guard(d.Sessions, domain.RouteHome))
	prop := e.Group(domain.RouteProperty.Path, middleware.Guard(d.Sessions, domain.RouteProperty))
	prop.GET("", propertyHandler.Get)
	prop.POST("/favorite", propertyHandler.AddFavorite)
	prop.DELETE("/favorite", propertyHandler.RemoveFavorite)
	prop.POST("/contact", propertyHandler.Contact)
	prop.POST("/purchase", propertyHandler.Purchase)

	// --- Authenticated views ---
	e.GET(domain.RouteFavorites.Path, propertyHandler.Favorites, middleware.Guard(d.Sessions, domain.RouteFavorites))
	profile := e.Group(domain.RouteProfile.Path, middleware.Guard(d.Sessions, domain.RouteProfile))
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)

	// --- Admin ---
	admin := e.Group(domain.RouteAdmin.Path, middleware.Guard(d.Sessions, domain.RouteAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PATCH("/users/:id/toggle-status", adminHandler.ToggleStatus)

	// --- Health probes and metrics (no guard) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Ready)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the session store up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, hostMetrics},
	}))

	return e
}

// requestLogger logs one zerolog line per served request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
