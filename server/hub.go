package server

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub fans status updates out to every connected websocket client.
type Hub struct {
	mu        sync.Mutex
	clients   map[*client]struct{}
	broadcast chan StatusResponse
}

type client struct {
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*client]struct{}),
		broadcast: make(chan StatusResponse, 16),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case status := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				c.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a status broadcast without blocking the game loop.
func (h *Hub) Publish(status StatusResponse) {
	select {
	case h.broadcast <- status:
	default:
		log.Debug().Msg("dropping status broadcast, hub backlog full")
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (c *client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow client; drop the frame rather than stall the hub.
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
