package notifications

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// The feed is server-push only; clients send nothing but control frames.
	maxMessageSize = 512

	sendBuffer = 64
)

// WSHub is the side of a hub a Client talks back to.
type WSHub interface {
	UnregisterClient(c *Client)
	Name() string
}

// Client is one websocket connection subscribed to a host's feed.
type Client struct {
	Hub  WSHub
	Conn *websocket.Conn

	// Send is the outbound queue drained by WritePump.
	Send chan []byte

	// HostID is the host whose feed this socket follows.
	HostID uint
}

// Control frames share the event envelope so clients switch on "type" only.
const droppedFrame = `{"type":"activity_dropped","reason":"buffer_full"}`

func NewClient(hub WSHub, conn *websocket.Conn, hostID uint) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		HostID: hostID,
		Send:   make(chan []byte, sendBuffer),
	}
}

// Ready queues the frame telling the client its subscription is live. Events
// published before it arrives may be missing, so clients load the feed over
// HTTP after receiving it.
func (c *Client) Ready() {
	c.TrySend([]byte(fmt.Sprintf(`{"type":"feed_ready","host_id":%d}`, c.HostID)))
}

// ReadPump keeps the read deadline alive and unregisters the client when the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.UnregisterClient(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { _ = c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				middleware.Logger.Debug("activity socket closed", slog.Uint64("host_id", uint64(c.HostID)), slog.String("error", err.Error()))
			}
			return
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues message without blocking. A full queue drops the message and
// tries to tell the client to re-fetch the feed.
func (c *Client) TrySend(message []byte) {
	defer func() {
		if r := recover(); r != nil {
			observability.WebSocketBackpressureDrops.WithLabelValues(c.Hub.Name(), "closed").Inc()
		}
	}()

	select {
	case c.Send <- message:
	default:
		observability.WebSocketBackpressureDrops.WithLabelValues(c.Hub.Name(), "full").Inc()
		select {
		case c.Send <- []byte(droppedFrame):
		default:
		}
	}
}
