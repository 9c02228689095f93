package service

import (
	"context"
	"sync"
	"time"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/api/metrics"
)

// SessionRegistry owns one SessionManager per client. Managers are built
// lazily by the injected factory and torn down on Remove, Close, or by
// the idle sweeper.
//
// Sessions run against the registry's lifecycle context, not the context
// of the request that happened to create them: a session's inactivity
// watcher must outlive the creating request.
type SessionRegistry struct {
	ctx     context.Context
	factory func(clientID string) *SessionManager

	mu       sync.Mutex
	sessions map[string]*SessionManager
	onEvict  func(clientID string)
	closed   bool
	done     chan struct{}
}

// NewSessionRegistry returns a registry backed by the given factory.
// ctx bounds the lifetime of every session the registry starts.
func NewSessionRegistry(ctx context.Context, factory func(clientID string) *SessionManager) *SessionRegistry {
	return &SessionRegistry{
		ctx:      ctx,
		factory:  factory,
		sessions: make(map[string]*SessionManager),
		done:     make(chan struct{}),
	}
}

// Get returns the session for clientID, or nil when none exists.
func (r *SessionRegistry) Get(clientID string) *SessionManager {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[clientID]
}

// GetOrCreate returns the session for clientID, starting a new one when
// the client has none yet.
func (r *SessionRegistry) GetOrCreate(clientID string) *SessionManager {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	if m, ok := r.sessions[clientID]; ok {
		return m
	}

	m := r.factory(clientID)
	m.Start(r.ctx)
	r.sessions[clientID] = m
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return m
}

// Remove stops and forgets the session for clientID. No-op when absent.
func (r *SessionRegistry) Remove(clientID string) {
	r.mu.Lock()
	m, ok := r.sessions[clientID]
	delete(r.sessions, clientID)
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	onEvict := r.onEvict
	r.mu.Unlock()

	if ok {
		m.Stop()
		if onEvict != nil {
			onEvict(clientID)
		}
	}
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep launches a background sweeper that evicts sessions which are
// anonymous and idle past their inactivity limit, so a stream of fresh
// client IDs cannot grow the registry without bound. onEvict, when
// non-nil, is called with each evicted client ID after the session has
// stopped (the server uses it to drop the client's activity source).
func (r *SessionRegistry) Sweep(interval time.Duration, onEvict func(clientID string)) {
	r.mu.Lock()
	r.onEvict = onEvict
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-r.done:
				return
			case <-ticker.C:
				r.evictIdle()
			}
		}
	}()
}

// evictIdle removes every session reporting itself evictable.
func (r *SessionRegistry) evictIdle() {
	r.mu.Lock()
	var victims []string
	for clientID, m := range r.sessions {
		if m.Evictable() {
			victims = append(victims, clientID)
		}
	}
	r.mu.Unlock()

	for _, clientID := range victims {
		r.Remove(clientID)
	}
}

// Close stops every session, stops the sweeper, and rejects further
// GetOrCreate calls.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.done)
	sessions := r.sessions
	r.sessions = make(map[string]*SessionManager)
	metrics.ActiveSessions.Set(0)
	r.mu.Unlock()

	for _, m := range sessions {
		m.Stop()
	}
}
