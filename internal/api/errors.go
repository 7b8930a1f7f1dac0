package api

import (
	"errors"
	"net/http"

	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/service/auth"
	"github.com/mjgrant/bookrec-api/internal/service/catalog"
	"github.com/mjgrant/bookrec-api/internal/service/review"
	"github.com/mjgrant/bookrec-api/internal/store"
)

// MapErrorToStatusCode translates internal errors to HTTP status codes.
// This is the single place where the error taxonomy meets the wire:
// handlers pass errors through untouched and let this mapping decide the
// status, so a new error variant only needs a case here.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation failures
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, domain.ErrRatingOutOfRange),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrUsernameTooLong),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, review.ErrUnknownReviewer),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Authentication failures
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Missing resources
	case errors.Is(err, review.ErrBookNotFound),
		errors.Is(err, catalog.ErrBookNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflicts
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Everything else, including store.ErrUnavailable, is a server fault.
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the given error.
// Internal details (SQL errors, driver messages, stack context) stay in
// the logs.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, domain.ErrRatingOutOfRange):
		return "Rating must be between 1 and 5"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrUsernameTooLong),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooLong):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return ve.Message
		}
		return err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid or missing token"
	case errors.Is(err, store.ErrUsernameExists):
		return "Username is already taken"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, review.ErrUnknownReviewer):
		return "Unknown reviewer"
	case errors.Is(err, review.ErrBookNotFound),
		errors.Is(err, catalog.ErrBookNotFound),
		errors.Is(err, store.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	default:
		return "An internal error occurred"
	}
}
