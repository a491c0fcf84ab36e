// Package list реализует HTTP-обработчик получения заметок текущего
// пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/session-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/session-gate/internal/http/response"
	"github.com/magabrotheeeer/session-gate/internal/lib/sl"
	"github.com/magabrotheeeer/session-gate/internal/models"
)

// Service описывает интерфейс хранилища заметок.
type Service interface {
	ListNotesByUser(ctx context.Context, userUID string) ([]*models.Note, error)
}

// Handler обрабатывает HTTP-запросы списка заметок.
type Handler struct {
	log   *slog.Logger
	notes Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, notes Service) *Handler {
	return &Handler{
		log:   log,
		notes: notes,
	}
}

// ServeHTTP godoc
// @Summary Список заметок пользователя
// @Tags Notes
// @Produce  json
// @Success 200 {object} map[string]any "Заметки пользователя"
// @Failure 401 {object} response.ErrorResponse "Посетитель не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /notes/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	visitor, ok := middlewarectx.VisitorFromContext(r.Context())
	if !ok || visitor.User == nil {
		log.Error("no visitor in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	notes, err := h.notes.ListNotesByUser(r.Context(), visitor.User.UID)
	if err != nil {
		log.Error("failed to list notes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	items := make([]map[string]any, 0, len(notes))
	for _, n := range notes {
		items = append(items, map[string]any{
			"uid":        n.UID,
			"title":      n.Title,
			"body":       n.Body,
			"created_at": n.CreatedAt,
		})
	}

	log.Info("notes listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(items))
}
