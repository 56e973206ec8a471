package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// SessionRegistry keeps live editing sessions in memory.
type SessionRegistry struct {
	deps SessionDeps

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionRegistry(deps SessionDeps) *SessionRegistry {
	return &SessionRegistry{deps: deps, sessions: map[string]*Session{}}
}

// Create starts a session seeded from init.
func (r *SessionRegistry) Create(init SessionInit) *Session {
	s := newSession(uuid.New().String(), r.deps, init)
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with id if it belongs to owner.
func (r *SessionRegistry) Get(id, owner string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || s.owner != owner {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Discard closes and forgets the session.
func (r *SessionRegistry) Discard(id, owner string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok || s.owner != owner {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.mu.Unlock()
	s.Close()
	return nil
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll discards every session, used on shutdown.
func (r *SessionRegistry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = map[string]*Session{}
	r.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
