// Package server boots one of the HTTP apps: configuration, logger,
// database, optional token verification, router and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cesargomez89/fullstack/internal/auth"
	"github.com/cesargomez89/fullstack/internal/config"
	"github.com/cesargomez89/fullstack/internal/constants"
	httpapp "github.com/cesargomez89/fullstack/internal/http"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

// Env is what an app's routes are built from.
type Env struct {
	Config *config.Config
	Logger *logger.Logger
	Store  *store.DB

	// Verifier is nil for apps without bearer auth.
	Verifier auth.TokenVerifier
}

// Builder creates the app's routes.
type Builder func(ctx context.Context, env *Env) (httpapp.RouteRegistrar, error)

// Run loads the configuration of app, serves it until SIGINT or SIGTERM
// and then shuts down within the configured timeout.
func Run(app string, build Builder) error {
	cfg, err := config.Load(app)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}).WithApp(app)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DBDriver, cfg.DatabaseURL, store.SchemaFor(app))
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err, "driver", cfg.DBDriver)
		return err
	}
	defer db.Close()

	env := &Env{Config: cfg, Logger: appLogger, Store: db}
	if cfg.RequiresAuth() {
		jwks := auth.NewJWKS(cfg.AuthJWKSURL,
			auth.WithTTL(cfg.AuthJWKSTTL),
			auth.WithHTTPClient(&http.Client{Timeout: cfg.AuthJWKSTimeout}),
			auth.WithLogger(appLogger.WithComponent("jwks")),
		)
		env.Verifier = auth.NewVerifier(jwks, cfg.AuthAudience, cfg.AuthIssuer, nil)
	}

	routes, err := build(ctx, env)
	if err != nil {
		appLogger.Error("Failed to build routes", "error", err)
		return err
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: httpapp.NewRouter(httpapp.Deps{
			Config: cfg,
			Logger: appLogger,
			Store:  db,
		}, routes),
		ReadTimeout:  constants.DefaultReadTimeout,
		WriteTimeout: constants.DefaultWriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			appLogger.Error("Server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info("Server exiting")
	return nil
}

// Exit logs err to stderr and exits non-zero when err is set.
func Exit(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
