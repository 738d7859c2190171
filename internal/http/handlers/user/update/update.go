// Package update реализует HTTP-обработчик частичного обновления собственного профиля.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-auth-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-auth-api/internal/http/response"
	"github.com/magabrotheeeer/user-auth-api/internal/lib/sl"
	"github.com/magabrotheeeer/user-auth-api/internal/models"
	"github.com/magabrotheeeer/user-auth-api/internal/storage"
)

// Request — входные данные частичного обновления. Оба поля необязательны;
// пустое тело — корректный запрос, возвращающий текущее состояние.
type Request struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// Response — публичное представление пользователя после обновления.
type Response struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Visits   int    `json:"visits"`
}

// Handler обрабатывает запросы на обновление собственного профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	Update(ctx context.Context, id int, username, password *string) (*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

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

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.Update(r.Context(), user.ID, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			log.Error("username already taken", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("username already taken"))
			return
		}
		log.Error("failed to update user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update user"))
		return
	}

	log.Info("user updated", slog.Int("id", updated.ID), slog.String("username", updated.Username))
	render.JSON(w, r, Response{
		ID:       updated.ID,
		Username: updated.Username,
		Visits:   updated.Visits,
	})
}
