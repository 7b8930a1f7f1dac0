package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews. The range is closed: {1, 2, 3, 4, 5}.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's review of a book. Reviews are embedded in a book's
// review sequence (the book owns them); UserID is a non-owning reference
// into the user store. Reviews are append-only: never edited or deleted
// independently of their book.
type Review struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	UserID    uuid.UUID `json:"user_id"`
	Body      string    `json:"review"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`

	// Username is populated when reviews are listed with the reviewer
	// resolved against the user store. Empty otherwise.
	Username string `json:"username,omitempty"`
}

// NewReview creates a new Review with a generated ID and a server-assigned
// creation timestamp.
func NewReview(bookID, userID uuid.UUID, body string, rating int) (*Review, error) {
	review := &Review{
		ID:        uuid.New(),
		BookID:    bookID,
		UserID:    userID,
		Body:      body,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks that the Review has valid data. A rating outside [1,5]
// must be rejected here, before persistence.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil || r.BookID == uuid.Nil {
		return ErrInvalidID
	}
	if r.UserID == uuid.Nil {
		return NewValidationError("userId", "is required", ErrValidation)
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrRatingOutOfRange
	}
	return nil
}
