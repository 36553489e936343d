// Package session keeps per-visitor controller state in memory.
package session

import (
	"sync"
	"time"

	"github.com/goliatone/go-userdetails/internal/ids"
	"github.com/goliatone/go-userdetails/pkg/controller"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 30 * time.Minute

type entry struct {
	state    controller.State
	lastSeen time.Time
}

// Store maps session ids to controller state. Entries expire after TTL of
// inactivity; expiry is applied lazily on access and by Sweep.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the idle lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDSource overrides session id generation.
func WithIDSource(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore constructs an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
		newID:   ids.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// TTL returns the idle lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create starts a new session on the initial form.
func (s *Store) Create() (string, controller.State) {
	id := s.newID()
	state := controller.InitialState()

	s.mu.Lock()
	s.entries[id] = entry{state: state, lastSeen: s.now()}
	s.mu.Unlock()
	return id, state
}

// Get returns the state for id and refreshes its idle timer. Expired or
// unknown ids report false.
func (s *Store) Get(id string) (controller.State, bool) {
	if id == "" {
		return controller.State{}, false
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return controller.State{}, false
	}
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, id)
		return controller.State{}, false
	}
	e.lastSeen = now
	s.entries[id] = e
	return e.state, true
}

// Put stores state for id.
func (s *Store) Put(id string, state controller.State) {
	if id == "" {
		return
	}
	s.mu.Lock()
	s.entries[id] = entry{state: state, lastSeen: s.now()}
	s.mu.Unlock()
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Len reports the number of tracked sessions, including expired ones not yet
// swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
