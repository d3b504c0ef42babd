package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/realestate/portal/internal/api"
	"github.com/realestate/portal/internal/api/handler"
	"github.com/realestate/portal/internal/api/middleware"
	"github.com/realestate/portal/internal/config"
	"github.com/realestate/portal/internal/core/ports"
	"github.com/realestate/portal/internal/core/service"
	"github.com/realestate/portal/internal/infrastructure/db/file"
	"github.com/realestate/portal/internal/infrastructure/db/memory"
	mongostore "github.com/realestate/portal/internal/infrastructure/db/mongo"
	redisstore "github.com/realestate/portal/internal/infrastructure/db/redis"
	"github.com/realestate/portal/internal/infrastructure/httpclient"
	"github.com/realestate/portal/internal/infrastructure/restapi"
	"github.com/realestate/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("api", cfg.API.BaseURL).
		Str("session_backend", cfg.Session.Backend).
		Msg("portal starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	backend, closeBackend, err := openSessionBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session backend")
	}
	defer closeBackend()

	sessions := service.NewSessionService(backend, middleware.Navigator{}, logger.Component("session"))

	client := httpclient.New(httpclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, sessions, nil, logger.Component("httpclient"))
	client.OnUnauthorized(sessions.Teardown)

	authAPI := restapi.NewAuthClient(client, logger.Component("restapi"))
	propertyAPI := restapi.NewPropertyClient(client, logger.Component("restapi"))
	validate := service.NewValidator()

	e := api.NewRouter(api.Deps{
		Sessions:   sessions,
		Properties: propertyAPI,
		Admin:      restapi.NewAdminClient(client),
		Auth:       service.NewAuthFlow(authAPI, sessions, validate, logger.Component("auth")),
		Profile:    service.NewProfileFlow(authAPI, sessions, validate),
		Favorites:  service.NewFavoritesFlow(propertyAPI, sessions),
		Inquiries:  service.NewInquiryFlow(propertyAPI, sessions),
		Validator:  validate,
		Ready:      map[string]handler.Pinger{"session_store": sessions},
	}, logger.Component("http"))

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}
	log.Info().Msg("graceful shutdown complete")
}

// openSessionBackend builds the store selected by SESSION_BACKEND. The
// returned func releases its connections.
func openSessionBackend(ctx context.Context, cfg *config.Config) (ports.SessionBackend, func(), error) {
	noop := func() {}
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return memory.NewSessionStore(), noop, nil

	case config.BackendRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, noop, err
		}
		return redisstore.NewSessionStore(rdb, cfg.Session.Name), func() { _ = rdb.Close() }, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return mongostore.NewSessionStore(db, cfg.Session.Name), closeFn, nil

	case config.BackendFile:
		store, err := file.NewSessionStore(cfg.Session.File, cfg.Session.Key)
		if err != nil {
			return nil, noop, err
		}
		if err := store.Ping(ctx); err != nil {
			return nil, noop, fmt.Errorf("session file %s: %w", cfg.Session.File, err)
		}
		return store, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
