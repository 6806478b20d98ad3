package input

import "github.com/jakecoffman/cp"

// MoveFunc receives pointer positions in screen coordinates.
type MoveFunc func(pos cp.Vector)

// Hub is the process-wide registry of pointer-move listeners. Listeners are
// called in subscription order.
type Hub struct {
	listeners []*Subscription
	pos       cp.Vector
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscription is a registered listener. Close removes it.
type Subscription struct {
	hub *Hub
	fn  MoveFunc
}

// Subscribe registers fn and returns the handle that removes it.
func (h *Hub) Subscribe(fn MoveFunc) *Subscription {
	s := &Subscription{hub: h, fn: fn}
	if h == nil || fn == nil {
		s.hub = nil
		return s
	}
	h.listeners = append(h.listeners, s)
	return s
}

// Close detaches the listener. Closing twice, or closing a nil
// subscription, does nothing.
func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	h := s.hub
	s.hub = nil
	for i, l := range h.listeners {
		if l == s {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			return
		}
	}
}

// Active reports whether the listener is still attached.
func (s *Subscription) Active() bool {
	return s != nil && s.hub != nil
}

// Move records the pointer position and notifies every listener.
func (h *Hub) Move(pos cp.Vector) {
	if h == nil {
		return
	}
	h.pos = pos
	// Listeners may close their subscription from inside the callback.
	listeners := append([]*Subscription(nil), h.listeners...)
	for _, l := range listeners {
		if l.Active() {
			l.fn(pos)
		}
	}
}

// Position returns the last position passed to Move.
func (h *Hub) Position() cp.Vector {
	if h == nil {
		return cp.Vector{}
	}
	return h.pos
}

// Len returns the number of attached listeners.
func (h *Hub) Len() int {
	if h == nil {
		return 0
	}
	return len(h.listeners)
}
