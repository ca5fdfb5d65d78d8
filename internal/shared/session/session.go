// Package session holds the process-wide authenticated identity.
//
// The session is shared by every controller but mutated only by the session
// use cases; all other consumers hold a read-only view through Current.
package session

import "sync"

// Identity is the authenticated identity delivered by the backend.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Session is the single process-wide authentication state.
type Session struct {
	mu       sync.RWMutex
	identity *Identity
}

func New() *Session {
	return &Session{}
}

// Current returns the present identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Set installs the authenticated identity. Only the session use cases call this.
func (s *Session) Set(identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity
}

// Clear terminates the local session. Safe to call when no session is active.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
}
