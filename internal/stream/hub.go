// ABOUTME: WebSocket hub broadcasting availability and event change notices.
// ABOUTME: Tracks connected panel clients and fans out JSON notices on mutation.

package stream

import (
	"encoding/json"
	"log"
	"time"
)

// Notice types pushed to subscribed panels.
const (
	NoticeAvailabilityChanged = "availability_changed"
	NoticeEventChanged        = "event_changed"
)

// Notice is one change notification on the wire.
type Notice struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	At   string `json:"at"`
}

// NewNotice stamps a notice with the current time.
func NewNotice(noticeType, id string) Notice {
	return Notice{Type: noticeType, ID: id, At: time.Now().UTC().Format(time.RFC3339)}
}

// Hub owns the set of connected clients. All membership changes go through
// the run loop, so no locking is needed.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop is called. Call it
// on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast fans a notice out to every connected client. Safe on a nil hub
// so handlers can run without a stream attached.
func (h *Hub) Broadcast(n Notice) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(n)
	if err != nil {
		log.Printf("stream: failed to marshal notice: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}
