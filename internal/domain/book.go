package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a catalog entry. A book exclusively owns its review
// sequence; deleting the book deletes the reviews. Books are created out
// of band (seeding), never through the HTTP surface.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Summary   string    `json:"summary,omitempty"`
	AuthorBio string    `json:"author_bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Reviews   []Review  `json:"reviews,omitempty"`
}

// NewBook creates a new Book with a generated ID and creation timestamp.
func NewBook(title, author, genre, summary, authorBio string) (*Book, error) {
	book := &Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		Genre:     genre,
		Summary:   summary,
		AuthorBio: authorBio,
		CreatedAt: time.Now().UTC(),
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks that the Book has valid data.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrInvalidID
	}
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if b.Author == "" {
		return ErrEmptyAuthor
	}
	if b.Genre == "" {
		return ErrEmptyGenre
	}
	return nil
}
