package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/platform/postgres"
	"github.com/mjgrant/bookrec-api/internal/service/auth"
	"github.com/mjgrant/bookrec-api/internal/store"
	"github.com/mjgrant/bookrec-api/migrations"
)

// openTestDB connects to the database named by DATABASE_URL and ensures
// the schema is current. Tests are skipped when no database is available.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping database integration tests")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "."))

	return db
}

func createTestUser(t *testing.T, users store.UserStore) *domain.User {
	t.Helper()
	user, err := domain.NewUser("user-"+uuid.NewString()[:8], "a long enough password")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func createTestBook(t *testing.T, books store.BookStore, genre string) *domain.Book {
	t.Helper()
	book, err := domain.NewBook("book-"+uuid.NewString()[:8], "Author", genre, "", "")
	require.NoError(t, err)
	require.NoError(t, books.Create(context.Background(), book))
	return book
}

func TestPostgresUserStoreIntegration(t *testing.T) {
	db := openTestDB(t)
	users := postgres.NewPostgresUserStore(db, auth.NewBcryptHasher(4), nil)
	ctx := context.Background()

	t.Run("create and fetch round-trip", func(t *testing.T) {
		user := createTestUser(t, users)

		byID, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Username, byID.Username)
		assert.Empty(t, byID.Password)
		assert.NotEmpty(t, byID.HashedPassword)

		byName, err := users.GetByUsername(ctx, user.Username)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		user := createTestUser(t, users)

		dup, err := domain.NewUser(user.Username, "another long password")
		require.NoError(t, err)
		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("unknown user yields ErrUserNotFound", func(t *testing.T) {
		_, err := users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		_, err = users.GetByUsername(ctx, "nobody-"+uuid.NewString())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresBookStoreIntegration(t *testing.T) {
	db := openTestDB(t)
	users := postgres.NewPostgresUserStore(db, auth.NewBcryptHasher(4), nil)
	books := postgres.NewPostgresBookStore(db, nil)
	ctx := context.Background()

	t.Run("find by genre is exact", func(t *testing.T) {
		genre := "genre-" + uuid.NewString()[:8]
		created := createTestBook(t, books, genre)

		found, err := books.FindByGenre(ctx, genre)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, created.ID, found[0].ID)

		none, err := books.FindByGenre(ctx, genre+"-other")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("append and list reviews in order", func(t *testing.T) {
		book := createTestBook(t, books, "genre-"+uuid.NewString()[:8])
		user := createTestUser(t, users)

		for i, body := range []string{"first", "second", "third"} {
			review, err := domain.NewReview(book.ID, user.ID, body, i%5+1)
			require.NoError(t, err)
			require.NoError(t, books.AppendReview(ctx, review))
		}

		listed, err := books.ListReviews(ctx, book.ID)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "first", listed[0].Body)
		assert.Equal(t, "second", listed[1].Body)
		assert.Equal(t, "third", listed[2].Body)
		assert.Equal(t, user.Username, listed[0].Username, "usernames resolve through the join")
	})

	t.Run("append to a missing book yields ErrBookNotFound", func(t *testing.T) {
		user := createTestUser(t, users)
		review, err := domain.NewReview(uuid.New(), user.ID, "body", 3)
		require.NoError(t, err)

		err = books.AppendReview(ctx, review)
		assert.ErrorIs(t, err, store.ErrBookNotFound)
	})

	t.Run("append with an unknown reviewer yields ErrInvalidEntity", func(t *testing.T) {
		book := createTestBook(t, books, "genre-"+uuid.NewString()[:8])
		review, err := domain.NewReview(book.ID, uuid.New(), "body", 3)
		require.NoError(t, err)

		err = books.AppendReview(ctx, review)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("listing a missing book yields ErrBookNotFound", func(t *testing.T) {
		_, err := books.ListReviews(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrBookNotFound)
	})

	t.Run("listing a book with no reviews yields an empty list", func(t *testing.T) {
		book := createTestBook(t, books, "genre-"+uuid.NewString()[:8])

		listed, err := books.ListReviews(ctx, book.ID)
		require.NoError(t, err)
		assert.NotNil(t, listed)
		assert.Empty(t, listed)
	})
}
