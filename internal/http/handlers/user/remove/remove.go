// Package remove реализует HTTP-обработчик удаления собственной учётной записи.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-auth-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-auth-api/internal/http/response"
	"github.com/magabrotheeeer/user-auth-api/internal/lib/sl"
)

// Handler обрабатывает запросы на удаление собственной учётной записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления пользователя.
type Service interface {
	Delete(ctx context.Context, id int) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Delete(r.Context(), user.ID); err != nil {
		log.Error("failed to delete user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete user"))
		return
	}

	log.Info("user deleted", slog.Int("id", user.ID), slog.String("username", user.Username))
	render.JSON(w, r, map[string]any{
		"message": "user deleted successfully",
	})
}
