package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"devchat/internal/config"
	"devchat/internal/core"
	"devchat/internal/store"
	"devchat/internal/store/sqlite"
	transporthttp "devchat/internal/transport/http"
)

// App wires together the store, hub, and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           store.MessageStore
	log             *zerolog.Logger
}

// New constructs the application with provided configuration. A store
// that cannot be opened is logged and left nil; the relay keeps serving
// connections and message writes fail silently downstream.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	var ms store.MessageStore
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.DatabasePath).Msg("store unavailable, continuing without persistence")
	} else {
		logger.Info().Str("db_path", cfg.DatabasePath).Msg("database connected")
		ms = st
	}

	hub := core.NewHub(ms, logger)
	server := transporthttp.NewServer(hub, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           ms,
		log:             logger,
	}
}

// Run starts the hub and HTTP server and blocks until context
// cancellation or fatal server error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the store if one was opened.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
