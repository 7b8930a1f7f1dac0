package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/platform/logger"
	"github.com/mjgrant/bookrec-api/internal/store"
)

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
//
// Reviews live in a child table with a foreign key to books; appending a
// review is a single INSERT, which is atomic per statement. Concurrent
// appends against the same book therefore never lose an update, and a
// reader never observes a partially appended sequence.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the
// BookStore interface. It accepts a database connection that should be
// initialized and managed by the caller.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// Create implements store.BookStore.Create
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	query := `
		INSERT INTO books (id, title, author, genre, summary, author_bio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.Summary,
		book.AuthorBio,
		book.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return MapError(err)
	}

	log.Info("book created",
		slog.String("book_id", book.ID.String()),
		slog.String("title", book.Title))
	return nil
}

// GetByID implements store.BookStore.GetByID
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, author, genre, summary, author_bio, created_at
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Summary,
		&book.AuthorBio,
		&book.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.String("book_id", id.String()))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, MapError(err)
	}

	return &book, nil
}

// FindByGenre implements store.BookStore.FindByGenre
// The match is exact and case-sensitive; an empty genre matches no rows.
func (s *PostgresBookStore) FindByGenre(ctx context.Context, genre string) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, author, genre, summary, author_bio, created_at
		FROM books
		WHERE genre = $1
		ORDER BY title, id
	`

	rows, err := s.db.QueryContext(ctx, query, genre)
	if err != nil {
		log.Error("failed to query books by genre",
			slog.String("error", err.Error()),
			slog.String("genre", genre))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	books := make([]*domain.Book, 0)
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Genre,
			&book.Summary,
			&book.AuthorBio,
			&book.CreatedAt,
		); err != nil {
			log.Error("failed to scan book row",
				slog.String("error", err.Error()),
				slog.String("genre", genre))
			return nil, MapError(err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return books, nil
}

// AppendReview implements store.BookStore.AppendReview
//
// The insert itself carries the atomicity guarantee; the foreign key to
// books doubles as the existence check, which also covers the race where
// the book is deleted between a caller's check and this insert.
// Returns store.ErrBookNotFound for a missing book and
// store.ErrInvalidEntity for a missing reviewer.
func (s *PostgresBookStore) AppendReview(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during append",
			slog.String("error", err.Error()),
			slog.String("book_id", review.BookID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (id, book_id, user_id, body, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.BookID,
		review.UserID,
		review.Body,
		review.Rating,
		review.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err, "reviews_book_id_fkey") {
			log.Debug("book not found for review append",
				slog.String("book_id", review.BookID.String()))
			return store.ErrBookNotFound
		}
		if IsForeignKeyViolation(err, "reviews_user_id_fkey") {
			log.Debug("reviewer not found for review append",
				slog.String("user_id", review.UserID.String()))
			return MapError(err)
		}

		log.Error("failed to append review",
			slog.String("error", err.Error()),
			slog.String("book_id", review.BookID.String()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	log.Info("review appended",
		slog.String("book_id", review.BookID.String()),
		slog.String("review_id", review.ID.String()),
		slog.Int("rating", review.Rating))
	return nil
}

// ListReviews implements store.BookStore.ListReviews
// Reviews come back in append order with usernames resolved. A missing
// book yields store.ErrBookNotFound, never an empty list.
func (s *PostgresBookStore) ListReviews(ctx context.Context, bookID uuid.UUID) ([]domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Existence first, so an empty result is distinguishable from a
	// missing book.
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check book existence",
			slog.String("error", err.Error()),
			slog.String("book_id", bookID.String()))
		return nil, MapError(err)
	}
	if !exists {
		log.Debug("book not found", slog.String("book_id", bookID.String()))
		return nil, store.ErrBookNotFound
	}

	query := `
		SELECT r.id, r.book_id, r.user_id, r.body, r.rating, r.created_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at, r.seq
	`

	rows, err := s.db.QueryContext(ctx, query, bookID)
	if err != nil {
		log.Error("failed to query reviews",
			slog.String("error", err.Error()),
			slog.String("book_id", bookID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Body,
			&review.Rating,
			&review.CreatedAt,
			&review.Username,
		); err != nil {
			log.Error("failed to scan review row",
				slog.String("error", err.Error()),
				slog.String("book_id", bookID.String()))
			return nil, MapError(err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return reviews, nil
}
