// Package read реализует HTTP-обработчик чтения собственного профиля.
//
// Пользователь уже разрешён JWT-middleware и лежит в контексте запроса;
// обработчик только формирует JSON-ответ. Хэш пароля наружу не отдается.
package read

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-auth-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-auth-api/internal/http/response"
)

// Response — публичное представление пользователя.
type Response struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Visits   int    `json:"visits"`
}

// Handler обрабатывает запросы на чтение собственного профиля.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает id, имя и счётчик посещений аутентифицированного пользователя.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Невалидный токен"
// @Router /users/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"

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

	log.Info("profile read", slog.String("username", user.Username), slog.Int("visits", user.Visits))
	render.JSON(w, r, Response{
		ID:       user.ID,
		Username: user.Username,
		Visits:   user.Visits,
	})
}
