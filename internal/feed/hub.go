// Package feed streams game events to connected browsers over WebSocket.
package feed

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashureev/arctic-quest/internal/domain"
)

const defaultBufferSize = 32

// Message is one frame sent on the feed.
type Message struct {
	Type    string        `json:"type"`
	Event   *domain.Event `json:"event,omitempty"`
	Balance *int          `json:"balance,omitempty"`
	At      int64         `json:"at"`
}

func eventMessage(e domain.Event) Message {
	return Message{Type: "event", Event: &e, At: e.At.Unix()}
}

func balanceMessage(balance int) Message {
	return Message{Type: string(domain.EventWalletChanged), Balance: &balance, At: time.Now().Unix()}
}

// client is one registered browser tab.
type client struct {
	send      chan Message
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(size int) *client {
	return &client{
		send: make(chan Message, size),
		done: make(chan struct{}),
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// offer queues msg without blocking. It reports false if the buffer is full
// or the client is gone.
func (c *client) offer(msg Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Hub tracks feed clients per user and tab session.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[string]*client
	bufferSize int
	dropped    atomic.Int64
}

// NewHub creates an empty hub. bufferSize <= 0 selects the default.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		clients:    make(map[string]map[string]*client),
		bufferSize: bufferSize,
	}
}

// register adds a client for a user/session, replacing any previous one.
func (h *Hub) register(userID, sessionID string) *client {
	c := newClient(h.bufferSize)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[userID]; !exists {
		h.clients[userID] = make(map[string]*client)
	}
	if existing, exists := h.clients[userID][sessionID]; exists {
		existing.close()
	}
	h.clients[userID][sessionID] = c
	slog.Info("Feed client registered", "user_id", userID, "session_id", sessionID)
	return c
}

// unregister removes c if it is still the current client for user/session.
func (h *Hub) unregister(userID, sessionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessions, ok := h.clients[userID]; ok {
		if current, exists := sessions[sessionID]; exists && current == c {
			delete(sessions, sessionID)
			if len(sessions) == 0 {
				delete(h.clients, userID)
			}
			slog.Info("Feed client unregistered", "user_id", userID, "session_id", sessionID)
		}
	}
	c.close()
}

// CloseUser disconnects every feed client of userID.
func (h *Hub) CloseUser(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.clients[userID]
	if !ok {
		return
	}
	for sid, c := range sessions {
		c.close()
		slog.Info("Feed client closed", "user_id", userID, "session_id", sid)
	}
	delete(h.clients, userID)
}

// Publish fans e out to the user's clients. It never blocks; frames for slow
// clients are dropped.
func (h *Hub) Publish(e domain.Event) {
	h.sendToUser(e.UserID, eventMessage(e))
}

func (h *Hub) sendToUser(userID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients[userID] {
		if !c.offer(msg) {
			h.dropped.Add(1)
		}
	}
}

// Connected returns the number of clients of userID.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Dropped returns the number of frames discarded for slow clients.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}
