// Command server runs the storefront HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/minimart/storefront/app/cart"
	"github.com/minimart/storefront/app/router"
	"github.com/minimart/storefront/internal/config"
	"github.com/minimart/storefront/internal/database"
	"github.com/minimart/storefront/internal/logging"
	"github.com/minimart/storefront/models"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	db, err := database.Open(cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logging.Warn().Err(err).Msg("closing database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.Database.Seed {
		seeded, err := database.Seed(db)
		if err != nil {
			return err
		}
		logging.Info().Bool("inserted", seeded).Msg("catalog seed checked")
	}

	productsRepo := models.NewProductsRepository(db)
	handler := router.New(router.Deps{
		Products:       productsRepo,
		Categories:     models.NewCategoriesRepository(db),
		Cart:           cart.NewService(models.NewCartRepository(db), productsRepo),
		Ping:           func(ctx context.Context) error { return database.Ping(ctx, db) },
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      cfg.RateLimit.Requests,
		RateWindow:     cfg.RateLimit.Window,
	})

	return serve(cfg.Server, handler)
}

func serve(cfg config.ServerConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
