// Package events fans out kitchen board updates to connected staff
// dashboards over server-sent events.
package events

import (
	"errors"
	"strings"
	"sync"
)

const (
	TypeOrderPaid     = "order_paid"
	TypeStatusChanged = "status_changed"
)

const (
	DefaultBufferSize       = 50
	DefaultSubscriberBuffer = 16
)

// OrderEvent is one board update for a single restaurant's stream.
type OrderEvent struct {
	Type        string `json:"type"`
	OrderID     string `json:"order_id"`
	TokenNumber int64  `json:"token_number"`
	Status      string `json:"status,omitempty"`
	At          string `json:"at"`
}

type Hub struct {
	mu               sync.RWMutex
	streams          map[string]*stream
	bufferSize       int
	subscriberBuffer int
}

type stream struct {
	mu     sync.Mutex
	buffer []OrderEvent
	subs   map[uint64]chan OrderEvent
	nextID uint64
}

type Subscription struct {
	hub          *Hub
	restaurantID string
	id           uint64
	ch           chan OrderEvent
	once         sync.Once
}

func NewHub() *Hub {
	return &Hub{
		streams:          make(map[string]*stream),
		bufferSize:       DefaultBufferSize,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

// Publish delivers an event to every subscriber of the restaurant's stream.
// Slow subscribers are skipped rather than blocking the caller.
func (h *Hub) Publish(restaurantID string, event OrderEvent) {
	if h == nil {
		return
	}
	key := strings.TrimSpace(restaurantID)
	if key == "" {
		return
	}
	h.mu.RLock()
	stream := h.streams[key]
	h.mu.RUnlock()
	if stream == nil {
		return
	}

	stream.mu.Lock()
	stream.buffer = append(stream.buffer, event)
	if len(stream.buffer) > h.bufferSize {
		stream.buffer = stream.buffer[len(stream.buffer)-h.bufferSize:]
	}
	subs := make([]chan OrderEvent, 0, len(stream.subs))
	for _, ch := range stream.subs {
		subs = append(subs, ch)
	}
	stream.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe attaches to a restaurant's stream and returns the recent event
// buffer so a reconnecting dashboard can catch up.
func (h *Hub) Subscribe(restaurantID string) (*Subscription, []OrderEvent, error) {
	if h == nil {
		return nil, nil, errors.New("hub_unavailable")
	}
	key := strings.TrimSpace(restaurantID)
	if key == "" {
		return nil, nil, errors.New("invalid_restaurant_id")
	}

	stream := h.ensureStream(key)
	stream.mu.Lock()
	if stream.subs == nil {
		stream.subs = make(map[uint64]chan OrderEvent)
	}
	id := stream.nextID
	stream.nextID++
	ch := make(chan OrderEvent, h.subscriberBuffer)
	stream.subs[id] = ch
	buffer := append([]OrderEvent(nil), stream.buffer...)
	stream.mu.Unlock()

	return &Subscription{
		hub:          h,
		restaurantID: key,
		id:           id,
		ch:           ch,
	}, buffer, nil
}

func (h *Hub) ensureStream(restaurantID string) *stream {
	h.mu.RLock()
	current := h.streams[restaurantID]
	h.mu.RUnlock()
	if current != nil {
		return current
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	current = h.streams[restaurantID]
	if current == nil {
		current = &stream{subs: make(map[uint64]chan OrderEvent)}
		h.streams[restaurantID] = current
	}
	return current
}

func (h *Hub) unsubscribe(restaurantID string, id uint64) {
	if h == nil {
		return
	}
	key := strings.TrimSpace(restaurantID)
	if key == "" {
		return
	}

	h.mu.RLock()
	stream := h.streams[key]
	h.mu.RUnlock()
	if stream == nil {
		return
	}

	stream.mu.Lock()
	delete(stream.subs, id)
	remaining := len(stream.subs)
	stream.mu.Unlock()
	if remaining != 0 {
		return
	}

	h.mu.Lock()
	current := h.streams[key]
	if current != stream {
		h.mu.Unlock()
		return
	}
	stream.mu.Lock()
	empty := len(stream.subs) == 0
	stream.mu.Unlock()
	if empty {
		delete(h.streams, key)
	}
	h.mu.Unlock()
}

func (s *Subscription) Events() <-chan OrderEvent {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.restaurantID, s.id)
	})
}
