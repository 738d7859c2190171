// Package app собирает сервис из компонентов: хранилище, миграции,
// выпуск токенов, бизнес-логика, маршруты и HTTP-сервер.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/user-auth-api/internal/config"
	"github.com/magabrotheeeer/user-auth-api/internal/lib/jwt"
	"github.com/magabrotheeeer/user-auth-api/internal/migrations"
	"github.com/magabrotheeeer/user-auth-api/internal/services/auth"
	"github.com/magabrotheeeer/user-auth-api/internal/storage"
)

// App хранит собранный HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New подключается к базе, применяет миграции и собирает приложение.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	jwtMaker, err := jwt.NewMaker(cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}

	authService := auth.New(db, jwtMaker)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.Close()
		return err
	}
}
