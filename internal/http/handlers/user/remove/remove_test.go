package remove

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/user-auth-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-auth-api/internal/models"
)

// Мок сервиса с методом Delete
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: 9, Username: "alice", Visits: 2}

	t.Run("successful delete", func(t *testing.T) {
		authMock := new(AuthServiceMock)
		authMock.On("Delete", mock.Anything, 9).Return(nil).Once()

		handler := New(newNoopLogger(), authMock)

		req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, user))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		err := json.NewDecoder(rec.Body).Decode(&got)
		assert.NoError(t, err)
		assert.Equal(t, "user deleted successfully", got["message"])

		authMock.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		authMock := new(AuthServiceMock)
		authMock.On("Delete", mock.Anything, 9).Return(errors.New("db error")).Once()

		handler := New(newNoopLogger(), authMock)

		req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, user))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		authMock.AssertExpectations(t)
	})

	t.Run("no user in context", func(t *testing.T) {
		authMock := new(AuthServiceMock)
		handler := New(newNoopLogger(), authMock)

		req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		authMock.AssertExpectations(t)
	})
}
