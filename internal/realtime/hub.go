package realtime

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/model"
)

const defaultBuffer = 32

// Message is what a subscriber receives.
type Message struct {
	Topic string      `json:"topic"`
	Event model.Event `json:"event"`
}

// Subscription receives messages for a fixed set of topics until closed.
type Subscription struct {
	hub    *Hub
	topics []string
	ch     chan Message
	once   sync.Once
}

// C returns the delivery channel. It is closed by Close.
func (s *Subscription) C() <-chan Message { return s.ch }

// Close detaches the subscription from the hub.
func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}

// Hub is an in-process broker. Publishing never blocks: a subscriber whose
// buffer is full misses the message.
type Hub struct {
	mu       sync.RWMutex
	topics   map[string]map[*Subscription]struct{}
	buffer   int
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub. buffer is the per-subscriber queue length.
// allowedOrigins lists the browser origins ServeWS accepts; with none only
// same-origin requests are upgraded, and "*" accepts any origin.
func NewHub(buffer int, allowedOrigins ...string) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		topics:   make(map[string]map[*Subscription]struct{}),
		buffer:   buffer,
		upgrader: newUpgrader(allowedOrigins),
	}
}

// Subscribe registers interest in topics.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	s := &Subscription{hub: h, topics: topics, ch: make(chan Message, h.buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, t := range topics {
		subs, ok := h.topics[t]
		if !ok {
			subs = make(map[*Subscription]struct{})
			h.topics[t] = subs
		}
		subs[s] = struct{}{}
	}
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, t := range s.topics {
		subs := h.topics[t]
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.topics, t)
		}
	}
	close(s.ch)
}

// Subscribers returns the number of live subscriptions on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Publish delivers ev to every current subscriber of topic.
func (h *Hub) Publish(_ context.Context, topic string, ev model.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{Topic: topic, Event: ev}
	for s := range h.topics[topic] {
		select {
		case s.ch <- msg:
		default:
			zlog.Logger.Warn().Str("topic", topic).Msg("subscriber buffer full, dropping message")
		}
	}
	return nil
}
