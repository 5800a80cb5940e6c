package realtime

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrHubBacklogged reports that the hub's event queue is full.
var ErrHubBacklogged = errors.New("realtime hub backlogged")

var connIDCounter atomic.Uint64

// Client bridges one websocket connection and the hub.
type Client struct {
	id     uint64
	userID uuid.UUID
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
}

func newClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	buffer := hub.cfg.SendBuffer
	if buffer <= 0 {
		buffer = 64
	}
	return &Client{
		id:     connIDCounter.Add(1),
		userID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan Event, buffer),
	}
}

// UserID returns the authenticated owner of this connection.
func (c *Client) UserID() uuid.UUID {
	return c.userID
}

// enqueue drops the event when the client cannot keep up; a slow consumer
// must not block the hub loop.
func (c *Client) enqueue(event Event) {
	select {
	case c.send <- event:
	default:
	}
}

// detach hands the client back to the hub, or returns immediately when the
// run loop has already exited.
func (c *Client) detach() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.detach()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongWait))
	})

	for {
		// inbound frames are only pong/close control traffic
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	pingPeriod := c.hub.cfg.PongWait * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
