package realtime

import (
	"context"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/logysma/logysma-backend/pkg/config"
	"github.com/logysma/logysma-backend/pkg/logger"
	"github.com/logysma/logysma-backend/pkg/metrics"
)

// Event is the wire format pushed to connected clients.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

type targeted struct {
	userID uuid.UUID
	event  Event
}

// Hub owns every live websocket connection. All state changes funnel through
// the run loop, callers interact via channels only.
type Hub struct {
	cfg      config.RealtimeConfig
	registry *Registry
	clients  map[uint64]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan targeted
	broadcast  chan Event
	done       chan struct{}

	metrics *metrics.ListingMetrics
	log     *logger.Logger
}

// HubParams groups dependencies for the hub.
type HubParams struct {
	Config  config.RealtimeConfig
	Metrics *metrics.ListingMetrics
	Log     *logger.Logger
}

// NewHub builds a hub; call Run before attaching clients.
func NewHub(params HubParams) *Hub {
	return &Hub{
		cfg:        params.Config,
		registry:   NewRegistry(),
		clients:    make(map[uint64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan targeted, 256),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
		metrics:    params.Metrics,
		log:        params.Log,
	}
}

// Run processes hub events until the context is canceled, then closes every
// connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[uint64]*Client)
			// unblocks pumps still trying to register or unregister
			close(h.done)
			return

		case client := <-h.register:
			h.clients[client.id] = client
			h.registry.Bind(client.id, client.userID)
			h.metrics.ConnectionOpened()
			if h.log != nil {
				h.log.Info(h.log.WithUserID(ctx, client.userID.String()), "websocket client connected")
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				h.registry.Unbind(client.id)
				close(client.send)
				h.metrics.ConnectionClosed()
				if h.log != nil {
					h.log.Info(h.log.WithUserID(ctx, client.userID.String()), "websocket client disconnected")
				}
			}

		case msg := <-h.direct:
			for _, connID := range h.registry.Connections(msg.userID) {
				if client, ok := h.clients[connID]; ok {
					client.enqueue(msg.event)
				}
			}

		case event := <-h.broadcast:
			for _, client := range h.clients {
				client.enqueue(event)
			}
		}
	}
}

// Attach registers the upgraded connection under the given user and starts
// its pumps. Returns nil when the hub has already shut down.
func (h *Hub) Attach(conn *websocket.Conn, userID uuid.UUID) *Client {
	client := newClient(h, conn, userID)
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return nil
	}
	go client.writePump()
	go client.readPump()
	return client
}

// PublishToUser queues an event for every live connection of one user. A user
// with no connections is not an error, the in-app copy still exists.
func (h *Hub) PublishToUser(userID uuid.UUID, event string, payload any) error {
	select {
	case h.direct <- targeted{userID: userID, event: Event{Name: event, Data: payload}}:
		return nil
	default:
		return ErrHubBacklogged
	}
}

// Broadcast queues an event for every connection. Drops when backlogged.
func (h *Hub) Broadcast(event string, payload any) {
	select {
	case h.broadcast <- Event{Name: event, Data: payload}:
	default:
	}
}
