package ws_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjgrant/bookrec-api/internal/domain"
	"github.com/mjgrant/bookrec-api/internal/events"
	"github.com/mjgrant/bookrec-api/internal/ws"
)

// wireMessage mirrors the JSON envelope clients receive.
type wireMessage struct {
	Type string `json:"type"`
	Data struct {
		BookID string         `json:"bookId"`
		Review *domain.Review `json:"review"`
	} `json:"data"`
}

func startServer(t *testing.T) (*ws.Hub, *httptest.Server) {
	t.Helper()

	hub := ws.NewHub(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.Run(ctx) }()

	server := httptest.NewServer(ws.NewHandler(hub, nil))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})

	return hub, server
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *ws.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == n
	}, 2*time.Second, 5*time.Millisecond)
}

func emitReview(t *testing.T, hub *ws.Hub) events.ReviewAdded {
	t.Helper()
	review, err := domain.NewReview(uuid.New(), uuid.New(), "Loved it.", 5)
	require.NoError(t, err)
	event := events.ReviewAdded{Review: review}
	require.NoError(t, hub.HandleEvent(context.Background(), event))
	return event
}

func readMessage(t *testing.T, conn *websocket.Conn) (wireMessage, bool) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wireMessage
	if err := conn.ReadJSON(&msg); err != nil {
		return wireMessage{}, false
	}
	return msg, true
}

func TestWebSocketDeliversNewReview(t *testing.T) {
	t.Parallel()

	hub, server := startServer(t)
	conn := dial(t, server, "")
	waitForClients(t, hub, 1)

	event := emitReview(t, hub)

	msg, ok := readMessage(t, conn)
	require.True(t, ok, "connected listener must receive the notification")

	assert.Equal(t, ws.MessageTypeNewReview, msg.Type)
	assert.Equal(t, event.Review.BookID.String(), msg.Data.BookID)
	require.NotNil(t, msg.Data.Review)
	assert.Equal(t, event.Review.ID, msg.Data.Review.ID)
	assert.Equal(t, 5, msg.Data.Review.Rating)
}

func TestWebSocketBookFilter(t *testing.T) {
	t.Parallel()

	hub, server := startServer(t)

	otherBook := uuid.New()
	filtered := dial(t, server, "?book="+otherBook.String())
	unfiltered := dial(t, server, "")
	waitForClients(t, hub, 2)

	emitReview(t, hub)

	_, ok := readMessage(t, unfiltered)
	assert.True(t, ok, "unfiltered listener receives every event")

	// The filtered listener subscribed to a different book.
	require.NoError(t, filtered.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var msg wireMessage
	err := filtered.ReadJSON(&msg)
	assert.Error(t, err, "filtered listener must not receive another book's event")
}

func TestWebSocketRejectsBadBookID(t *testing.T) {
	t.Parallel()

	_, server := startServer(t)

	resp, err := http.Get(server.URL + "?book=not-a-uuid")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocketClientDisconnectUnregisters(t *testing.T) {
	t.Parallel()

	hub, server := startServer(t)
	conn := dial(t, server, "")
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}
