// Package live pushes tournament updates to connected browsers.
//
// Clients subscribe to a topic (the tournament's document key) and receive every state the
// server broadcasts for it. The HTTP layer streams those messages as Server-Sent Events, which
// replaces the original front end's habit of polling the API every few seconds.
package live

import (
	"context"
	"sync"
)

// Client is one connected subscriber.
type Client struct {
	Topic string      // Which tournament document this client is watching
	Send  chan []byte // Outgoing messages; the hub writes here and the stream handler drains it
}

// NewClient returns a client for topic with a small send buffer.
func NewClient(topic string) *Client {
	return &Client{Topic: topic, Send: make(chan []byte, 16)}
}

// Message is a payload for every client watching Topic.
type Message struct {
	Topic string
	Data  []byte
}

// Hub tracks subscribers grouped by topic. All map writes happen on the Run goroutine;
// the mutex lets Count read the map from elsewhere.
type Hub struct {
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex
}

// NewHub creates an idle Hub. Call Run in a goroutine before using it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then closes every
// client's Send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Topic] == nil {
				h.clients[client.Topic] = make(map[*Client]bool)
			}
			h.clients[client.Topic][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients[msg.Topic] {
				select {
				case client.Send <- msg.Data:
				default:
					// A full buffer means the client stopped reading; drop it.
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range slow {
				h.remove(client)
			}

		case <-ctx.Done():
			h.mu.Lock()
			for topic, clients := range h.clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.clients, topic)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.Topic]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.Topic)
	}
}

// Broadcast queues data for every client watching topic. It never blocks on slow clients;
// after the hub has stopped it returns immediately.
func (h *Hub) Broadcast(topic string, data []byte) {
	select {
	case h.broadcast <- &Message{Topic: topic, Data: data}:
	case <-h.done:
	}
}

// Register starts delivering broadcasts for client.Topic to client.
// It returns false if the hub has already stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister stops delivery and closes client.Send. Unregistering twice is harmless.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Count returns how many clients are watching topic.
func (h *Hub) Count(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}
