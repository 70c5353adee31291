// Package sse is a small publish/subscribe hub keyed by run ID, used to
// stream iteration events to connected clients.
package sse

import "sync"

// Hub fans messages out to the subscribers of each run.
type Hub struct {
	mu    sync.Mutex
	conns map[string][]chan string
}

func NewHub() *Hub {
	return &Hub{conns: map[string][]chan string{}}
}

// Subscribe registers a client for the run and returns its channel together
// with an unsubscribe function.
func (h *Hub) Subscribe(id string) (chan string, func()) {
	ch := make(chan string, 16)

	h.mu.Lock()
	h.conns[id] = append(h.conns[id], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.conns[id]
		for i, c := range list {
			if c == ch {
				h.conns[id] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

// Publish sends msg to every subscriber of the run. Slow subscribers with a
// full buffer are skipped rather than blocked on.
func (h *Hub) Publish(id, msg string) {
	h.mu.Lock()
	list := append([]chan string(nil), h.conns[id]...)
	h.mu.Unlock()

	for _, ch := range list {
		select {
		case ch <- msg:
		default:
		}
	}
}
