// Package create реализует HTTP-обработчик создания заметки текущего
// пользователя. Владелец заметки берётся из состояния посетителя,
// помещённого в контекст middleware.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/session-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/session-gate/internal/http/response"
	"github.com/magabrotheeeer/session-gate/internal/lib/sl"
	"github.com/magabrotheeeer/session-gate/internal/models"
)

// Request — структура входных данных для создания заметки.
type Request struct {
	Title string `json:"title" validate:"required,min=1"`
	Body  string `json:"body"`
}

// Service описывает интерфейс хранилища заметок.
type Service interface {
	CreateNote(ctx context.Context, note models.Note) (*models.Note, error)
}

// Handler обрабатывает HTTP-запросы создания заметок.
type Handler struct {
	log      *slog.Logger
	notes    Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, notes Service) *Handler {
	return &Handler{
		log:      log,
		notes:    notes,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание заметки
// @Tags Notes
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные заметки"
// @Success 200 {object} map[string]any "Созданная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /notes/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notes.create"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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

	note, err := h.notes.CreateNote(r.Context(), models.Note{
		UserUID: visitor.User.UID,
		Title:   req.Title,
		Body:    req.Body,
	})
	if err != nil {
		log.Error("failed to create note", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("note created", slog.String("note_uid", note.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":        note.UID,
		"title":      note.Title,
		"body":       note.Body,
		"created_at": note.CreatedAt,
	}))
}
