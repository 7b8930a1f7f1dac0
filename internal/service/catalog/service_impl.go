package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/platform/logger"
	"github.com/mjgrant/bookrec-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	books  store.BookStore
	logger *slog.Logger
}

// NewService creates a new catalog Service implementation.
func NewService(books store.BookStore, logger *slog.Logger) Service {
	if books == nil {
		panic("books cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		books:  books,
		logger: logger.With(slog.String("component", "catalog_service")),
	}
}

// SuggestByGenre implements Service.SuggestByGenre.
func (s *serviceImpl) SuggestByGenre(ctx context.Context, genre string) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Decided behavior: an empty genre matches none. Short-circuit here so
	// the result never depends on how the store treats an empty equality.
	if genre == "" {
		log.Debug("empty genre, matching no books")
		return []*domain.Book{}, nil
	}

	books, err := s.books.FindByGenre(ctx, genre)
	if err != nil {
		log.Error("failed to find books by genre",
			slog.String("error", err.Error()),
			slog.String("genre", genre))
		return nil, fmt.Errorf("failed to find books by genre: %w", err)
	}

	log.Debug("genre suggestion served",
		slog.String("genre", genre),
		slog.Int("count", len(books)))
	return books, nil
}

// ListReviews implements Service.ListReviews.
func (s *serviceImpl) ListReviews(ctx context.Context, bookID uuid.UUID) ([]domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	reviews, err := s.books.ListReviews(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			log.Debug("book not found", slog.String("book_id", bookID.String()))
			return nil, ErrBookNotFound
		}
		log.Error("failed to list reviews",
			slog.String("error", err.Error()),
			slog.String("book_id", bookID.String()))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}
