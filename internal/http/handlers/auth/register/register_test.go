package register

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

	"github.com/magabrotheeeer/session-gate/internal/models"
	services "github.com/magabrotheeeer/session-gate/internal/services/auth"
	"github.com/magabrotheeeer/session-gate/internal/storage/repository"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, name, email, password, confirmPassword string) (*models.User, string, error) {
	args := m.Called(ctx, name, email, password, confirmPassword)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock, "session-gate-session", 7*24*time.Hour)

	validReq := Request{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
	createdUser := &models.User{
		UID:        "7f9c34d1-3a55-4a88-9d31-0f2b6a1c77e0",
		Name:       "Alice",
		Email:      "alice@example.com",
		IsApproved: false,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *models.User
		mockToken      string
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
		wantCookie     bool
	}{
		{
			name:           "valid registration",
			requestBody:    validReq,
			mockUser:       createdUser,
			mockToken:      "tok123",
			wantStatusCode: http.StatusOK,
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
			name: "validation error - bad email",
			requestBody: Request{
				Name: "Alice", Email: "not-an-email",
				Password: "password123", ConfirmPassword: "password123",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Email must be a valid email",
			wantStatus:     "Error",
		},
		{
			name: "passwords do not match",
			requestBody: Request{
				Name: "Alice", Email: "alice@example.com",
				Password: "password123", ConfirmPassword: "different",
			},
			mockErr:        fmt.Errorf("auth.Register: %w", services.ErrPasswordsDoNotMatch),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "passwords do not match",
			wantStatus:     "Error",
		},
		{
			name:           "email already registered",
			requestBody:    validReq,
			mockErr:        fmt.Errorf("auth.Register: %w", repository.ErrUserExists),
			wantStatusCode: http.StatusConflict,
			wantError:      "user with that email already exists",
			wantStatus:     "Error",
		},
		{
			name:           "storage error",
			requestBody:    validReq,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.mockUser != nil || tt.mockErr != nil {
				r := tt.requestBody.(Request)
				authMock.On("Register", mock.Anything, r.Name, r.Email, r.Password, r.ConfirmPassword).
					Return(tt.mockUser, tt.mockToken, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/auth/register/", bytes.NewReader(bodyBytes))
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

			if tt.wantStatusCode == http.StatusOK {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, createdUser.UID, data["user_uid"])
				assert.Equal(t, createdUser.Email, data["email"])
				assert.Equal(t, false, data["is_approved"])
			}

			cookies := rec.Result().Cookies()
			if tt.wantCookie {
				assert.Len(t, cookies, 1)
				assert.Equal(t, "session-gate-session", cookies[0].Name)
				assert.Equal(t, "tok123", cookies[0].Value)
			} else {
				assert.Empty(t, cookies)
			}

			if tt.mockUser != nil || tt.mockErr != nil {
				authMock.AssertExpectations(t)
			}
		})
	}
}
