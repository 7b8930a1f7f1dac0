package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mjgrant/bookrec-api/internal/domain"
)

// Service appends reviews to books and announces them. The append is not
// idempotent: two identical calls produce two reviews. Callers needing
// dedup must implement it themselves; this service never retries and never
// deduplicates.
type Service interface {
	// AddReview validates the input, appends a review (with a
	// server-assigned timestamp) to the book's review sequence, and emits
	// a ReviewAdded event after persistence succeeds.
	//
	// Returns:
	//   - (*domain.Review, nil): the persisted review
	//   - (nil, ErrInvalidRating): rating outside [1,5]
	//   - (nil, ErrBookNotFound): no book with the given ID
	//   - (nil, error): store failures, propagated unmodified
	//
	// The event is emitted strictly after the store write returns: a
	// failed write is never announced, and a crash between write and
	// emit drops only the notification, never the review.
	AddReview(ctx context.Context, bookID, userID uuid.UUID, body string, rating int) (*domain.Review, error)
}

// Common error types for the review service
var (
	// ErrInvalidRating indicates a rating outside the closed range [1,5].
	ErrInvalidRating = fmt.Errorf("%w: %v", domain.ErrValidation, domain.ErrRatingOutOfRange)

	// ErrBookNotFound indicates that the target book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrUnknownReviewer indicates the userId does not reference a
	// registered user.
	ErrUnknownReviewer = errors.New("unknown reviewer")
)

// ServiceError wraps errors from the review service with operation
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "add_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewAddReviewError returns a new ServiceError for the add_review operation.
func NewAddReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "add_review",
		Message:   message,
		Err:       err,
	}
}
