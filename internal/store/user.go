package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mjgrant/bookrec-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user's plaintext Password
	// is hashed into HashedPassword during the call and cleared afterwards;
	// plaintext is never persisted.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns validation errors from domain.User if the data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if no user has the given username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
