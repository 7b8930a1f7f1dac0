package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjgrant/bookrec-api/internal/api/middleware"
	"github.com/mjgrant/bookrec-api/internal/api/shared"
	"github.com/mjgrant/bookrec-api/internal/config"
	"github.com/mjgrant/bookrec-api/internal/service/auth"
)

func newJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-thirty-two-chars-long!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	jwtService := newJWTService(t)
	authMw := middleware.NewAuthMiddleware(jwtService, nil)

	// next captures the user ID the middleware placed in the context.
	var gotUserID uuid.UUID
	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if id, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID); ok {
			gotUserID = id
		}
		w.WriteHeader(http.StatusOK)
	})

	protected := authMw.Authenticate(next)

	t.Run("valid bearer token reaches the handler", func(t *testing.T) {
		nextCalled = false
		userID := uuid.New()
		token, err := jwtService.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/books/x/review", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, nextCalled)
		assert.Equal(t, userID, gotUserID, "authenticated user ID must be in the context")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodPost, "/api/books/x/review", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		for _, header := range []string{"Bearer", "Token abc", "abc"} {
			nextCalled = false
			req := httptest.NewRequest(http.MethodPost, "/api/books/x/review", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
			assert.False(t, nextCalled)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodPost, "/api/books/x/review", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})
}
