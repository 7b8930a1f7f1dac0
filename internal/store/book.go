package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mjgrant/bookrec-api/internal/domain"
)

// BookStore defines the interface for book catalog persistence, including
// the review sequence each book owns.
type BookStore interface {
	// Create saves a new book to the store. Books are created out of band
	// (seeding); there is no HTTP surface for this operation.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its unique ID, without its reviews.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// FindByGenre returns all books whose genre equals the given value
	// exactly (case-sensitive). An empty genre matches no books; callers
	// decide whether to reject or pass it through.
	FindByGenre(ctx context.Context, genre string) ([]*domain.Book, error)

	// AppendReview appends a review to a book's review sequence. The append
	// is a single-statement insert: atomic with respect to concurrent
	// appends against the same book, so no update is ever lost.
	// Returns ErrBookNotFound if the book does not exist (including the
	// race where the book disappears between check and insert).
	// Returns ErrInvalidEntity if the reviewer does not exist.
	AppendReview(ctx context.Context, review *domain.Review) error

	// ListReviews returns a book's reviews in append order, with each
	// review's UserID resolved to a display username.
	// Returns ErrBookNotFound if the book does not exist; a book with no
	// reviews yields an empty slice, never an error.
	ListReviews(ctx context.Context, bookID uuid.UUID) ([]domain.Review, error)
}
