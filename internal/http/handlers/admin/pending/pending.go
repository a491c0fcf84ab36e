// Package pending реализует HTTP-обработчик списка пользователей,
// ожидающих одобрения, для экрана администратора.
package pending

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/session-gate/internal/http/response"
	"github.com/magabrotheeeer/session-gate/internal/lib/sl"
	"github.com/magabrotheeeer/session-gate/internal/models"
)

// Service описывает интерфейс бизнес-логики списка неодобренных пользователей.
type Service interface {
	ListUnapproved(ctx context.Context) ([]*models.User, error)
}

// Handler обрабатывает HTTP-запросы списка неодобренных пользователей.
type Handler struct {
	log         *slog.Logger
	authService Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей, ожидающих одобрения
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/pending/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.pending"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.authService.ListUnapproved(r.Context())
	if err != nil {
		log.Error("failed to list unapproved users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	items := make([]map[string]any, 0, len(users))
	for _, u := range users {
		items = append(items, map[string]any{
			"user_uid":   u.UID,
			"name":       u.Name,
			"email":      u.Email,
			"created_at": u.CreatedAt,
		})
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": items,
	}))
}
