// Package activity carries user activity signals from the transport
// layer to session inactivity clocks. The original client fed these from
// pointer, key, click, and scroll events; on the server every
// authenticated request counts as activity.
package activity

import "sync"

// Source fans one Emit out to every registered callback. It satisfies
// ports.ActivitySource.
type Source struct {
	mu        sync.RWMutex
	callbacks []func()
}

func NewSource() *Source {
	return &Source{}
}

// OnActivity registers a callback fired on every signal.
func (s *Source) OnActivity(fn func()) {
	s.mu.Lock()
	s.callbacks = append(s.callbacks, fn)
	s.mu.Unlock()
}

// Emit delivers one activity signal to all subscribers.
func (s *Source) Emit() {
	s.mu.RLock()
	callbacks := s.callbacks
	s.mu.RUnlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Hub routes activity signals to per-client sources, so one client's
// requests only refresh that client's inactivity clock.
type Hub struct {
	mu      sync.Mutex
	sources map[string]*Source
}

func NewHub() *Hub {
	return &Hub{sources: make(map[string]*Source)}
}

// Source returns the client's activity source, creating it on first use.
func (h *Hub) Source(clientID string) *Source {
	h.mu.Lock()
	defer h.mu.Unlock()
	src, ok := h.sources[clientID]
	if !ok {
		src = NewSource()
		h.sources[clientID] = src
	}
	return src
}

// Emit delivers one signal to the named client's subscribers. Unknown
// clients are a no-op.
func (h *Hub) Emit(clientID string) {
	h.mu.Lock()
	src := h.sources[clientID]
	h.mu.Unlock()

	if src != nil {
		src.Emit()
	}
}

// Drop forgets the client's source.
func (h *Hub) Drop(clientID string) {
	h.mu.Lock()
	delete(h.sources, clientID)
	h.mu.Unlock()
}
