package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mjgrant/bookrec-api/internal/domain"
)

// Service serves the catalog's read path: genre suggestions and a book's
// review listing.
type Service interface {
	// SuggestByGenre returns books whose genre equals the given value
	// exactly (case-sensitive). An empty genre matches no books and
	// returns an empty slice.
	SuggestByGenre(ctx context.Context, genre string) ([]*domain.Book, error)

	// ListReviews returns a book's reviews in append order, with each
	// reviewer's userId resolved to a username.
	// Returns ErrBookNotFound for an unknown book, never an empty list.
	ListReviews(ctx context.Context, bookID uuid.UUID) ([]domain.Review, error)
}

// ErrBookNotFound indicates that the requested book does not exist.
var ErrBookNotFound = errors.New("book not found")
