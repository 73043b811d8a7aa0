// @title        Imóveis CRM API
// @version      1.0
// @description  Property listings, favourites and cookie-session authentication.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/imoveiscrm/realestate-api/internal/api"
	"github.com/imoveiscrm/realestate-api/internal/api/handler"
	"github.com/imoveiscrm/realestate-api/internal/api/middleware"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
	"github.com/imoveiscrm/realestate-api/internal/core/service"
	"github.com/imoveiscrm/realestate-api/internal/infrastructure/config"
	"github.com/imoveiscrm/realestate-api/internal/infrastructure/db/memory"
	mongostore "github.com/imoveiscrm/realestate-api/internal/infrastructure/db/mongo"
	"github.com/imoveiscrm/realestate-api/internal/infrastructure/db/postgres"
	redisstore "github.com/imoveiscrm/realestate-api/internal/infrastructure/db/redis"
	"github.com/imoveiscrm/realestate-api/internal/infrastructure/queue"
	"github.com/imoveiscrm/realestate-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "realestate-api",
	})
	if cfg.UsingDevSecret() {
		log.Warn().Msg("SESSION_SECRET not set, signing cookies with the development key")
	}

	var closers []func(context.Context) error
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](closeCtx); err != nil {
				log.Error().Err(err).Msg("close failed")
			}
		}
	}()

	store, closeStore, err := openEntityStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	closers = append(closers, closeStore)

	sessions, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeSessions)

	auth := service.NewAuthService(store, sessions, cfg.Session.TTL, log)
	if cfg.SeedDemoData {
		if err := service.NewSeeder(store, auth, log).Run(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	views := queue.NewDispatcher(cfg.ViewWorkers, store, log)
	views.Start(ctx)
	closers = append(closers, views.Stop)

	e := api.NewRouter(api.Deps{
		Auth:       auth,
		Properties: service.NewPropertyService(store, store, views, log),
		Cookies:    middleware.NewCookieCodec(cfg.Session.CookieName, cfg.SigningSecret(), cfg.IsProduction()),
		Health:     map[string]handler.Pinger{"store": store, "sessions": sessions},
		Log:        log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).
			Str("store", cfg.StoreBackend).
			Str("sessions", cfg.SessionBackend).
			Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openEntityStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.EntityStore, func(context.Context) error, error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		store := mongostore.NewStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return store, client.Disconnect, nil

	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool), func(context.Context) error { pool.Close(); return nil }, nil

	default:
		log.Warn().Msg("using in-memory entity store, data is lost on restart")
		return memory.NewStore(), func(context.Context) error { return nil }, nil
	}
}

func openSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, func(context.Context) error, error) {
	if cfg.SessionBackend == config.SessionRedis {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewSessionStore(client), func(context.Context) error { return client.Close() }, nil
	}

	sessions := memory.NewSessionStore()
	sweepCtx, cancel := context.WithCancel(ctx)
	go sessions.RunSweeper(sweepCtx, time.Hour)
	return sessions, func(context.Context) error { cancel(); return nil }, nil
}
