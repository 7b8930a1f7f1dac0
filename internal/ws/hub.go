package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/events"
)

// Message types sent to WebSocket clients.
const (
	MessageTypeNewReview = "newReview"
)

// Message is the envelope written to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ReviewPayload is the data carried by a newReview message.
type ReviewPayload struct {
	BookID string         `json:"bookId"`
	Review *domain.Review `json:"review"`
}

// envelope pairs a message with the topic it was published on, so the hub
// can route it to clients whose subscription matches.
type envelope struct {
	topic string
	msg   Message
}

// ClientGauge receives the connected-client count whenever it changes.
// The metrics collector implements it; a nil gauge is ignored.
type ClientGauge interface {
	SetWebSocketClients(n int)
}

// Hub maintains the set of active clients and broadcasts messages to them.
// It implements events.Handler so it can be registered directly with the
// event emitter.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *slog.Logger
	gauge      ClientGauge
}

// Ensure Hub implements events.Handler
var _ events.Handler = (*Hub)(nil)

// NewHub creates a new Hub. The gauge may be nil.
func NewHub(logger *slog.Logger, gauge ClientGauge) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With(slog.String("component", "ws_hub")),
		gauge:      gauge,
	}
}

// Run processes client lifecycle events and broadcasts until the context
// is canceled, then closes every connected client and returns ctx.Err().
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			h.logger.Info("websocket hub stopped", "reason", ctx.Err().Error())
			return ctx.Err()

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.setGauge(n)
			h.logger.Info("websocket client connected", "total_clients", n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.setGauge(n)
			h.logger.Info("websocket client disconnected", "total_clients", n)

		case env := <-h.broadcast:
			h.broadcastToClients(env)
		}
	}
}

// HandleEvent implements events.Handler. Known event variants are
// translated to client messages; anything else is ignored.
func (h *Hub) HandleEvent(ctx context.Context, event events.Event) error {
	switch ev := event.(type) {
	case events.ReviewAdded:
		h.publish(event.Topic(), Message{
			Type: MessageTypeNewReview,
			Data: ReviewPayload{
				BookID: ev.Review.BookID.String(),
				Review: ev.Review,
			},
		})
	default:
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", string(event.EventType()))
	}
	return nil
}

// publish enqueues a message for broadcast. If the broadcast queue is
// full the message is dropped: delivery is best-effort by contract.
func (h *Hub) publish(topic string, msg Message) {
	select {
	case h.broadcast <- envelope{topic: topic, msg: msg}:
	default:
		h.logger.Warn("broadcast channel full, dropping message",
			"message_type", msg.Type,
			"topic", topic)
	}
}

// broadcastToClients sends a message to every client whose subscription
// matches the envelope's topic. A client whose send buffer is full is
// dropped from the hub.
func (h *Hub) broadcastToClients(env envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client

	for client := range h.clients {
		if !client.subscribedTo(env.topic) {
			continue
		}
		select {
		case client.send <- env.msg:
		default:
			// Slow consumer: mark for removal rather than block the hub.
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		h.logger.Warn("dropped slow websocket client", "total_clients", len(h.clients))
	}
	if len(toRemove) > 0 {
		h.setGauge(len(h.clients))
	}
}

// closeAllClients closes every connected client. Called during shutdown.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.setGauge(0)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) setGauge(n int) {
	if h.gauge != nil {
		h.gauge.SetWebSocketClients(n)
	}
}
