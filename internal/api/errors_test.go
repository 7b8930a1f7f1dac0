package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mjgrant/bookrec-api/internal/api"
	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/service/auth"
	"github.com/mjgrant/bookrec-api/internal/service/catalog"
	"github.com/mjgrant/bookrec-api/internal/service/review"
	"github.com/mjgrant/bookrec-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid rating", review.ErrInvalidRating, http.StatusBadRequest},
		{"rating out of range", domain.ErrRatingOutOfRange, http.StatusBadRequest},
		{"validation error", domain.NewValidationError("userId", "is required", domain.ErrValidation), http.StatusBadRequest},
		{"unknown reviewer", review.ErrUnknownReviewer, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"review book not found", review.ErrBookNotFound, http.StatusNotFound},
		{"catalog book not found", catalog.ErrBookNotFound, http.StatusNotFound},
		{"store book not found", store.ErrBookNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"store unavailable", store.ErrUnavailable, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel keeps its mapping", fmt.Errorf("context: %w", store.ErrBookNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("internal errors get a generic message", func(t *testing.T) {
		t.Parallel()
		msg := api.GetSafeErrorMessage(errors.New("pq: connection refused to 10.1.2.3"))
		assert.Equal(t, "An internal error occurred", msg)
	})

	t.Run("rating errors name the valid range", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Rating must be between 1 and 5", api.GetSafeErrorMessage(review.ErrInvalidRating))
	})

	t.Run("validation errors surface the field message", func(t *testing.T) {
		t.Parallel()
		err := domain.NewValidationError("userId", "is required", domain.ErrValidation)
		assert.Equal(t, "is required", api.GetSafeErrorMessage(err))
	})

	t.Run("not-found variants stay distinct", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Book not found", api.GetSafeErrorMessage(review.ErrBookNotFound))
		assert.Equal(t, "User not found", api.GetSafeErrorMessage(store.ErrUserNotFound))
	})
}
