package events

import (
	"sync"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

var eventLog = logging.For("events")

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 32

// Hub implements domain.EventPublisher as an in-process broadcaster.
// Publish never blocks: a subscriber whose queue is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan domain.Event
	nextID int
	buffer int
}

// NewHub creates a hub with the given per-subscriber buffer (DefaultBuffer if <= 0).
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{subs: make(map[int]chan domain.Event), buffer: buffer}
}

// Subscribe returns a receive channel and a cancel func that closes it.
func (h *Hub) Subscribe() (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, h.buffer)
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers event to every subscriber that has room.
func (h *Hub) Publish(event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eventLog.Debugf("publish %s %s", event.Type, event.PresetID)
	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			eventLog.Warnf("subscriber %d is slow, dropped %s", id, event.Type)
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
