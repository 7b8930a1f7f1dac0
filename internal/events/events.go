package events

import (
	"context"
	"fmt"

	"github.com/mjgrant/bookrec-api/internal/domain"
)

// Type identifies an event variant. The set is closed: handlers can
// switch on it exhaustively.
type Type string

const (
	// TypeReviewAdded is emitted after a review has been durably persisted.
	TypeReviewAdded Type = "newReview"
)

// Event is the closed set of domain events flowing through the emitter.
// Every event names its variant and a topic, so a future authorization
// layer can gate subscriptions per topic without changing the transport.
type Event interface {
	// EventType returns the variant tag.
	EventType() Type

	// Topic returns the routing key for this event (e.g. "book:<id>").
	Topic() string
}

// ReviewAdded signals that a review was appended to a book's review
// sequence. It is emitted strictly after persistence succeeds, never
// before.
type ReviewAdded struct {
	Review *domain.Review
}

// EventType implements Event.
func (e ReviewAdded) EventType() Type { return TypeReviewAdded }

// Topic implements Event. Review events are routed per book.
func (e ReviewAdded) Topic() string {
	return fmt.Sprintf("book:%s", e.Review.BookID)
}

// Handler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate
// actions; a handler error never undoes the state change that produced
// the event.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event Event) error
}

// Emitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of
// handlers.
type Emitter interface {
	// Emit publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	Emit(ctx context.Context, event Event) error
}
