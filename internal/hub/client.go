package hub

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// TrackerRefresher triggers a discovery refresh on behalf of a client.
type TrackerRefresher interface {
	RefreshTrackers() error
}

// Client represents a connected WebSocket client.
type Client struct {
	id     uuid.UUID
	hub    *Hub
	conn   *websocket.Conn
	logger *slog.Logger
	send   chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(h *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:     uuid.New(),
		hub:    h,
		conn:   conn,
		logger: h.logger,
		send:   make(chan []byte, 256),
	}
}

// ID returns the client's identifier.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads client commands until the connection drops. A
// "refresh_trackers" command re-runs generic tracker discovery.
func (c *Client) ReadPump(refresher TrackerRefresher) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.logger.Warn("bad client message", "client", c.id, "error", err)
			continue
		}

		switch clientMsg.Type {
		case "refresh_trackers":
			if refresher == nil {
				continue
			}
			if err := refresher.RefreshTrackers(); err != nil {
				c.logger.Error("tracker refresh failed", "client", c.id, "error", err)
			} else {
				c.logger.Info("tracker refresh requested", "client", c.id)
			}
		}
	}
}
