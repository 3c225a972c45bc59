// Package session tracks the currently authenticated Supabase user.
// Every store operation derives the owner identity from here per call;
// nothing downstream caches it, so a sign-out/sign-in swap can never
// act under a stale identity.
package session

import (
	"errors"
	"sync"
)

// ErrNoSession is returned when no user is signed in.
var ErrNoSession = errors.New("no active session")

// Session is the identity attached to every gateway call.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}

// Manager holds the active session. Safe for concurrent use; the store
// and the auth handlers share one instance.
type Manager struct {
	mu      sync.RWMutex
	current *Session
}

// NewManager creates a Manager with no signed-in user.
func NewManager() *Manager {
	return &Manager{}
}

// Set replaces the active session after a successful sign-in.
func (m *Manager) Set(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &s
}

// Clear drops the active session on sign-out.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// Current returns the active session, or ErrNoSession when signed out.
func (m *Manager) Current() (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, ErrNoSession
	}
	return *m.current, nil
}
