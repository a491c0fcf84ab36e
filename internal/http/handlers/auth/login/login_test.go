package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	services "github.com/magabrotheeeer/session-gate/internal/services/auth"
	"github.com/magabrotheeeer/session-gate/internal/storage/repository"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock, "session-gate-session", 7*24*time.Hour)

	tests := []struct {
		name           string
		requestBody    interface{}
		mockToken      string
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
		wantCookie     bool
	}{
		{
			name:           "valid login",
			requestBody:    Request{Email: "user@example.com", Password: "password123"},
			mockToken:      "tok123",
			mockErr:        nil,
			wantStatusCode: http.StatusOK,
			wantError:      "",
			wantStatus:     "OK",
			wantCookie:     true,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Email: "user@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "unknown email",
			requestBody:    Request{Email: "ghost@example.com", Password: "password123"},
			mockErr:        fmt.Errorf("auth.Login: %w", repository.ErrUserNotFound),
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid email or password",
			wantStatus:     "Error",
		},
		{
			name:           "wrong password",
			requestBody:    Request{Email: "user@example.com", Password: "password123"},
			mockErr:        fmt.Errorf("auth.Login: %w", services.ErrInvalidCredentials),
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid email or password",
			wantStatus:     "Error",
		},
		{
			name:           "session store error",
			requestBody:    Request{Email: "user@example.com", Password: "password123"},
			mockErr:        errors.New("redis down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal service error",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.mockToken != "" || tt.mockErr != nil {
				authMock.On("Login", mock.Anything, tt.requestBody.(Request).Email, tt.requestBody.(Request).Password).
					Return(tt.mockToken, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/auth/login/", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

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

			cookies := rec.Result().Cookies()
			if tt.wantCookie {
				assert.Len(t, cookies, 1)
				assert.Equal(t, "session-gate-session", cookies[0].Name)
				assert.Equal(t, "tok123", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
			} else {
				assert.Empty(t, cookies)
			}

			if tt.mockToken != "" || tt.mockErr != nil {
				authMock.AssertExpectations(t)
			}
		})
	}
}
