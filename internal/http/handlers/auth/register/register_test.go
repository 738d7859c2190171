package register

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/user-auth-api/internal/storage"
)

// Мок сервиса с методом Register
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, username, password string) (int, error) {
	args := m.Called(ctx, username, password)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockID         int
		mockErr        error
		expectCall     bool
		wantStatusCode int
		wantMessage    string
		wantError      string
	}{
		{
			name: "valid registration",
			requestBody: Request{
				Username: "user1",
				Password: "password123",
			},
			mockID:         1,
			expectCall:     true,
			wantStatusCode: http.StatusCreated,
			wantMessage:    "user registered successfully",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name: "validation error - missing password",
			requestBody: Request{
				Username: "user1",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
		},
		{
			name: "validation error - username too long",
			requestBody: Request{
				Username: "very_long_username_that_exceeds_the_fifty_character_limit",
				Password: "password123",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Username is too long",
		},
		{
			name: "username already registered",
			requestBody: Request{
				Username: "user1",
				Password: "password123",
			},
			mockErr:        storage.ErrUsernameTaken,
			expectCall:     true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "username already registered",
		},
		{
			name: "storage failure",
			requestBody: Request{
				Username: "user1",
				Password: "password123",
			},
			mockErr:        errors.New("db error"),
			expectCall:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.expectCall {
				authMock.On("Register", mock.Anything, "user1", "password123").
					Return(tt.mockID, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), authMock)

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

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got["message"])
			}
			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			authMock.AssertExpectations(t)
		})
	}
}
