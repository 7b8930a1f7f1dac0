package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjgrant/bookrec-api/internal/domain"
)

func TestNewBook(t *testing.T) {
	t.Parallel()

	book, err := domain.NewBook("Dune", "Frank Herbert", "Science Fiction", "Desert planet politics.", "")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Science Fiction", book.Genre)
	assert.False(t, book.CreatedAt.IsZero())
	assert.Empty(t, book.Reviews)
}

func TestBookValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		author  string
		genre   string
		wantErr error
	}{
		{name: "missing title", title: "", author: "a", genre: "g", wantErr: domain.ErrEmptyTitle},
		{name: "missing author", title: "t", author: "", genre: "g", wantErr: domain.ErrEmptyAuthor},
		{name: "missing genre", title: "t", author: "a", genre: "", wantErr: domain.ErrEmptyGenre},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			book, err := domain.NewBook(tt.title, tt.author, tt.genre, "", "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, book)
		})
	}
}
