package ws

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to WebSocket connections and attaches
// the resulting clients to the hub. No authentication is applied to the
// channel: any connected listener receives all events it subscribes to.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a Handler bound to the given hub.
func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The channel is intentionally open; see package doc.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws_handler")),
	}
}

// ServeHTTP handles GET /ws. An optional book query parameter narrows the
// subscription to a single book's topic; without it the client receives
// every event.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var topic string
	if raw := r.URL.Query().Get("book"); raw != "" {
		bookID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid book id", http.StatusBadRequest)
			return
		}
		topic = fmt.Sprintf("book:%s", bookID)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, topic, h.logger)
	h.hub.register <- client
	client.Start()
}
