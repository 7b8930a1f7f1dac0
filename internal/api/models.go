// Package api contains the HTTP handlers, request/response models, and
// error mapping for the public JSON surface. Internal error types never
// leak to clients: every error crossing this boundary is translated to a
// status code and a generic message here.
package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/mjgrant/bookrec-api/internal/domain"
)

// RegisterRequest represents the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the payload for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// LoginResponse is returned on successful login. The token authorizes
// subsequent write requests; its lifetime is server-configured.
type LoginResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// AddReviewRequest represents the payload for appending a review to a
// book. The reviewer is taken from the body, not the token; the token
// only gates access to the endpoint.
type AddReviewRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Review string    `json:"review" validate:"required,max=4096"`
	Rating int       `json:"rating" validate:"required"`
}

// ReviewResponse represents a single review in API responses.
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// BookResponse represents a catalog entry in API responses. Reviews are
// served by the dedicated listing endpoint, not inlined here.
type BookResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Summary   string    `json:"summary,omitempty"`
	AuthorBio string    `json:"author_bio,omitempty"`
}

// NewReviewResponse maps a domain review to its API representation.
func NewReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Username:  r.Username,
		Review:    r.Body,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}

// NewBookResponse maps a domain book to its API representation.
func NewBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Summary:   b.Summary,
		AuthorBio: b.AuthorBio,
	}
}
