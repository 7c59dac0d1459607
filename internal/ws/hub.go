package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"

	"github.com/shelfcam/shelfcam-api/internal/events"
)

// writeWait bounds how long a broadcast waits on a single client before the
// client is dropped, so one stalled connection cannot stall every publish.
const writeWait = 5 * time.Second

// alertStream is the subset of a websocket connection the hub writes to.
type alertStream interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	Close() error
}

// Hub fans alert events out to connected dashboard clients.
type Hub struct {
	mu      sync.Mutex
	clients map[alertStream]struct{}
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[alertStream]struct{}),
		logger:  logger,
	}
}

// Subscribe attaches the hub to alert lifecycle events.
func (h *Hub) Subscribe(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventAlertCreated, h.handleEvent)
	dispatcher.Subscribe(events.EventAlertUpdated, h.handleEvent)
	dispatcher.Subscribe(events.EventAlertAcknowledged, h.handleEvent)
	dispatcher.Subscribe(events.EventAlertResolved, h.handleEvent)
}

// Serve keeps a client connection registered until it closes. Reads are
// drained and discarded; the stream is one-way.
func (h *Hub) Serve(conn *websocket.Conn) {
	h.register(conn)
	defer h.unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) register(client alertStream) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) unregister(client alertStream) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
	_ = client.Close()
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) handleEvent(_ context.Context, event events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteJSON(event); err != nil {
			h.logger.Debug("dropping websocket client", zap.Error(err))
			delete(h.clients, client)
			_ = client.Close()
		}
	}
	return nil
}
