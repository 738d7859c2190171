// Package middlewarectx содержит HTTP middleware для проверки токенов доступа.
//
// JWTMiddleware проверяет наличие и валидность токена в заголовке Authorization,
// разрешает его в пользователя через сервис аутентификации (что увеличивает
// счётчик посещений) и кладёт снимок пользователя в контекст запроса.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с заголовком
// WWW-Authenticate: Bearer.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-auth-api/internal/http/response"
	"github.com/magabrotheeeer/user-auth-api/internal/lib/sl"
	"github.com/magabrotheeeer/user-auth-api/internal/models"
	"github.com/magabrotheeeer/user-auth-api/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ, под которым в контексте лежит *models.User.
const User Key = "user"

// Service описывает интерфейс сервиса для разрешения токена в пользователя.
type Service interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// CurrentUser извлекает пользователя, положенного в контекст JWTMiddleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен в заголовке Authorization.
//
// Если токен валиден и его subject существует, кладёт пользователя в контекст
// запроса, иначе возвращает 401 Unauthorized с challenge-заголовком.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.Header().Set("WWW-Authenticate", "Bearer")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.Resolve(r.Context(), tokenStr)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					log.Error("invalid or expired token", sl.Err(err))
					w.Header().Set("WWW-Authenticate", "Bearer")
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("could not validate credentials"))
					return
				}
				log.Error("failed to resolve token", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
