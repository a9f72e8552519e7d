package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerHost = 8
	maxTotalConns   = 5000
)

var (
	ErrHubClosed       = errors.New("activity hub is shutting down")
	ErrServerConnLimit = errors.New("server connection limit reached")
	ErrHostConnLimit   = errors.New("host connection limit reached")
)

// Hub maps hostID to the host's open activity feed sockets.
type Hub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
	closed     bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[uint]map[*Client]struct{})}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "activity" }

// Register adds a connection for hostID.
func (h *Hub) Register(hostID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if h.totalConns >= maxTotalConns {
		return nil, ErrServerConnLimit
	}
	m, ok := h.conns[hostID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[hostID] = m
	}
	if len(m) >= maxConnsPerHost {
		return nil, ErrHostConnLimit
	}

	client := NewClient(h, conn, hostID)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnections.Inc()
	return client, nil
}

// UnregisterClient removes client and closes its send queue. Calling it twice is harmless.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.HostID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	close(client.Send)
	h.totalConns--
	observability.WebSocketConnections.Dec()
	if len(m) == 0 {
		delete(h.conns, client.HostID)
	}
}

// Broadcast sends message to every connection of hostID.
func (h *Hub) Broadcast(hostID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns[hostID] {
		c.TrySend(message)
	}
}

// Connections returns the number of open sockets for hostID.
func (h *Hub) Connections(hostID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[hostID])
}

// StartWiring forwards every activity:host:<id> message to that host's sockets.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartActivitySubscriber(ctx, func(channel, payload string) {
		hostID, ok := ParseActivityChannel(channel)
		if !ok {
			middleware.Logger.Warn("invalid activity channel", slog.String("channel", channel))
			return
		}
		h.Broadcast(hostID, []byte(payload))
	})
}

// Shutdown closes every client's send queue so its WritePump sends the close
// frame and exits. New registrations are refused afterwards.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for hostID, clients := range h.conns {
		for client := range clients {
			observability.WebSocketConnections.Dec()
			close(client.Send)
		}
		middleware.Logger.Debug("activity sockets closing", slog.Uint64("host_id", uint64(hostID)), slog.Int("count", len(clients)))
	}
	h.conns = make(map[uint]map[*Client]struct{})
	h.totalConns = 0
	return nil
}
