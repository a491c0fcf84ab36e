// Package logout реализует HTTP-обработчик выхода из системы.
// Выход идемпотентен: отсутствующий или уже недействительный
// токен не считается ошибкой.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/session-gate/internal/http/response"
	"github.com/magabrotheeeer/session-gate/internal/lib/sl"
	"github.com/magabrotheeeer/session-gate/internal/session"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log         *slog.Logger
	authService Service
	cookieName  string
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service, cookieName string) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		cookieName:  cookieName,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Удаляет сессию на сервере и очищает сессионную cookie. Операция идемпотентна.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Успешный выход"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/logout/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := session.TokenFromRequest(r, h.cookieName)

	if err := h.authService.Logout(r.Context(), token); err != nil {
		log.Error("logout failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	session.ClearCookie(w, h.cookieName)

	log.Info("logout success")
	render.JSON(w, r, response.OK())
}
