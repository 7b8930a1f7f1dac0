package review

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/events"
	"github.com/mjgrant/bookrec-api/internal/platform/logger"
	"github.com/mjgrant/bookrec-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	books   store.BookStore
	emitter events.Emitter
	logger  *slog.Logger
}

// NewService creates a new review Service implementation.
func NewService(books store.BookStore, emitter events.Emitter, logger *slog.Logger) Service {
	if books == nil {
		panic("books cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		books:   books,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "review_service")),
	}
}

// AddReview implements Service.AddReview.
func (s *serviceImpl) AddReview(
	ctx context.Context,
	bookID, userID uuid.UUID,
	body string,
	rating int,
) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject a bad rating before touching the store.
	if rating < domain.MinRating || rating > domain.MaxRating {
		log.Warn("rating out of range",
			slog.Int("rating", rating),
			slog.String("book_id", bookID.String()))
		return nil, ErrInvalidRating
	}

	review, err := domain.NewReview(bookID, userID, body, rating)
	if err != nil {
		log.Warn("review construction failed",
			slog.String("error", err.Error()),
			slog.String("book_id", bookID.String()))
		return nil, err
	}

	// The store-level append is a single atomic write; its foreign keys
	// report a vanished book or unknown reviewer.
	if err := s.books.AppendReview(ctx, review); err != nil {
		switch {
		case errors.Is(err, store.ErrBookNotFound):
			log.Debug("book not found", slog.String("book_id", bookID.String()))
			return nil, ErrBookNotFound
		case errors.Is(err, store.ErrInvalidEntity):
			log.Debug("unknown reviewer", slog.String("user_id", userID.String()))
			return nil, ErrUnknownReviewer
		default:
			log.Error("failed to append review",
				slog.String("error", err.Error()),
				slog.String("book_id", bookID.String()))
			// Infrastructure failures propagate unmodified; retry policy,
			// if any, belongs to the caller.
			return nil, NewAddReviewError("failed to persist review", err)
		}
	}

	// Announce only after durable persistence. A handler failure is
	// logged by the emitter and does not affect the persisted review:
	// at-least-once persistence, at-most-once notification.
	if err := s.emitter.Emit(ctx, events.ReviewAdded{Review: review}); err != nil {
		log.Warn("review persisted but notification failed",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
	}

	log.Info("review added",
		slog.String("book_id", bookID.String()),
		slog.String("review_id", review.ID.String()),
		slog.Int("rating", rating))

	return review, nil
}
