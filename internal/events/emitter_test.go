package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/events"
)

// countingHandler records events it receives and optionally fails.
type countingHandler struct {
	received []events.Event
	err      error
}

func (h *countingHandler) HandleEvent(ctx context.Context, event events.Event) error {
	h.received = append(h.received, event)
	return h.err
}

func newReviewAdded(t *testing.T) events.ReviewAdded {
	t.Helper()
	review, err := domain.NewReview(uuid.New(), uuid.New(), "body", 3)
	require.NoError(t, err)
	return events.ReviewAdded{Review: review}
}

func TestReviewAddedEvent(t *testing.T) {
	t.Parallel()

	event := newReviewAdded(t)

	assert.Equal(t, events.TypeReviewAdded, event.EventType())
	assert.Equal(t, "book:"+event.Review.BookID.String(), event.Topic())
}

func TestInMemoryEmitter(t *testing.T) {
	t.Parallel()

	t.Run("delivers to all handlers in registration order", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEmitter(nil)
		first := &countingHandler{}
		second := &countingHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event := newReviewAdded(t)
		require.NoError(t, emitter.Emit(context.Background(), event))

		require.Len(t, first.received, 1)
		require.Len(t, second.received, 1)
		assert.Equal(t, event, first.received[0])
	})

	t.Run("a failing handler does not block the others", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEmitter(nil)
		failing := &countingHandler{err: errors.New("handler down")}
		healthy := &countingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(healthy)

		err := emitter.Emit(context.Background(), newReviewAdded(t))
		assert.ErrorIs(t, err, failing.err)
		assert.Len(t, healthy.received, 1, "delivery continues past a failed handler")
	})

	t.Run("emit with no handlers is a no-op", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEmitter(nil)
		assert.NoError(t, emitter.Emit(context.Background(), newReviewAdded(t)))
	})
}
