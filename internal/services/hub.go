package services

import (
	"sync"
)

// EventType names the state that changed
type EventType string

const (
	EventNotifications EventType = "notifications"
	EventSession       EventType = "session"
	EventFavorites     EventType = "favorites"
	EventPools         EventType = "pools"
)

// Event is published after a service mutates its state
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// Hub fans state change events out to subscribers
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint64]func(Event)
	nextID      uint64
}

// NewHub creates a new event hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uint64]func(Event)),
	}
}

// Subscribe registers fn for every future event and returns a function that
// removes it again
func (h *Hub) Subscribe(fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers e to all subscribers. Subscribers are called outside the
// lock, so they may subscribe or unsubscribe themselves. A nil hub drops events.
func (h *Hub) Publish(e Event) {
	if h == nil {
		return
	}

	h.mu.RLock()
	subs := make([]func(Event), 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		subs = append(subs, fn)
	}
	h.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}

// SubscriberCount returns the number of active subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
