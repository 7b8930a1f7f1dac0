package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyUsername is returned when a username is empty.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrUsernameTooLong is returned when a username exceeds the column limit.
	ErrUsernameTooLong = errors.New("username must be at most 64 characters long")

	// ErrEmptyPassword is returned when a password is empty.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordTooLong is returned when a password exceeds bcrypt's
	// practical 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters long")

	// ErrEmptyTitle is returned when a book has no title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyAuthor is returned when a book has no author.
	ErrEmptyAuthor = errors.New("author cannot be empty")

	// ErrEmptyGenre is returned when a book has no genre.
	ErrEmptyGenre = errors.New("genre cannot be empty")

	// ErrRatingOutOfRange is returned when a review rating is outside [1,5].
	ErrRatingOutOfRange = errors.New("rating must be an integer between 1 and 5")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError carries the field that failed validation alongside the
// underlying sentinel, so the API layer can build a safe client message.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError wrapping the given sentinel.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
