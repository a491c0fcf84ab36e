package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/session-gate/internal/authz"
	"github.com/magabrotheeeer/session-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/session-gate/internal/models"
)

type NoteServiceMock struct {
	mock.Mock
}

func (m *NoteServiceMock) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	args := m.Called(ctx, note)
	created, _ := args.Get(0).(*models.Note)
	return created, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()

	owner := &models.User{UID: "uid-1", Name: "Alice", Email: "alice@example.com", IsApproved: true}
	created := &models.Note{
		UID:       "note-1",
		UserUID:   owner.UID,
		Title:     "groceries",
		Body:      "milk, bread",
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		visitor        *models.User
		mockNote       *models.Note
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid note",
			requestBody:    Request{Title: "groceries", Body: "milk, bread"},
			visitor:        owner,
			mockNote:       created,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "no visitor in context",
			requestBody:    Request{Title: "groceries"},
			visitor:        nil,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "authentication required",
			wantStatus:     "Error",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			visitor:        owner,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing title",
			requestBody:    Request{Body: "milk, bread"},
			visitor:        owner,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Title is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "storage error",
			requestBody:    Request{Title: "groceries", Body: "milk, bread"},
			visitor:        owner,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal service error",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notesMock := new(NoteServiceMock)
			handler := New(logger, notesMock)

			if tt.mockNote != nil || tt.mockErr != nil {
				r := tt.requestBody.(Request)
				notesMock.On("CreateNote", mock.Anything, models.Note{
					UserUID: owner.UID,
					Title:   r.Title,
					Body:    r.Body,
				}).Return(tt.mockNote, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.visitor != nil {
				ctx = middlewarectx.ContextWithVisitor(ctx, authz.NewVisitor(tt.visitor))
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			if tt.wantStatusCode == http.StatusOK {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, created.UID, data["uid"])
				assert.Equal(t, created.Title, data["title"])
			}

			notesMock.AssertExpectations(t)
		})
	}
}
