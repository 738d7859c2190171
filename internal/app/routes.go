package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/user-auth-api/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/user-auth-api/internal/http/handlers/auth/token"
	"github.com/magabrotheeeer/user-auth-api/internal/http/handlers/health"
	"github.com/magabrotheeeer/user-auth-api/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/user-auth-api/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/user-auth-api/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/user-auth-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-auth-api/internal/services/auth"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *auth.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/token", token.New(logger, authService).ServeHTTP)

	// Группа с JWT аутентификацией: каждый запрос здесь увеличивает
	// счётчик посещений пользователя ровно на единицу.
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Get("/users/me", read.New(logger).ServeHTTP)
		r.Put("/users/me", update.New(logger, authService).ServeHTTP)
		r.Delete("/users/me", remove.New(logger, authService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
