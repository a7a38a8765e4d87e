// Package realtime delivers fire-and-forget events to connected websocket
// clients.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"linkup/pkg/logger"
)

// TopicNewPost is the only topic the core publishes: a freshly created post's
// public representation.
const TopicNewPost = "new-post"

// Event is the wire envelope broadcast to clients
type Event struct {
	Topic     string          `json:"topic"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// envelope pairs encoded bytes with the client to skip, so relayed client
// events never echo back to their sender.
type envelope struct {
	data    []byte
	exclude *Client
}

// Hub maintains active clients and broadcasts events to them
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	logger     *zap.Logger
}

// NewHub creates a websocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.Get(),
	}
}

// Run serves the hub until ctx is cancelled
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("Client registered", zap.String("client_id", client.id))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Debug("Client unregistered", zap.String("client_id", client.id))

		case env := <-h.broadcast:
			for client := range h.clients {
				if client == env.exclude {
					continue
				}
				select {
				case client.send <- env.data:
				default:
					// client buffer full, drop the event for this client
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
			}
			return ctx.Err()
		}
	}
}

// Publish broadcasts an event to every connected client. Delivery is
// fire-and-forget: failures are not reported to the publisher.
func (h *Hub) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("Failed to encode event payload", zap.String("topic", topic), zap.Error(err))
		return
	}

	h.publish(Event{Topic: topic, Data: data, Timestamp: time.Now()}, nil)
}

func (h *Hub) publish(event Event, exclude *Client) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("Failed to encode event", zap.String("topic", event.Topic), zap.Error(err))
		return
	}

	select {
	case h.broadcast <- envelope{data: data, exclude: exclude}:
	default:
		h.logger.Warn("Broadcast queue full, event dropped", zap.String("topic", event.Topic))
	}
}
