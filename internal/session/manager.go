package session

import (
	"log"
	"sync"

	"github.com/llanterasoft/pos-panel/internal/backend"
)

// Manager fronts the two stores. Lookups try the persistent store first and
// fall back to the in-memory one, mirroring the original
// localStorage-then-sessionStorage order. Logins go to exactly one store
// depending on remember-me; logout clears both.
type Manager struct {
	persistent Store
	ephemeral  Store
	mu         sync.Mutex
}

// NewManager wires a Manager over the two stores.
func NewManager(persistent, ephemeral Store) *Manager {
	return &Manager{persistent: persistent, ephemeral: ephemeral}
}

// Current returns the active session, or nil when nobody is logged in.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, err := m.persistent.Load(); err == nil && s != nil {
		return s
	} else if err != nil {
		log.Printf("session: persistent store read failed: %v", err)
	}
	if s, err := m.ephemeral.Load(); err == nil && s != nil {
		return s
	}
	return nil
}

// Begin stores a fresh session after login.
func (m *Manager) Begin(token string, user backend.User, remember bool) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := New(token, user)
	store := m.ephemeral
	if remember {
		store = m.persistent
	}
	if err := store.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh rewrites the stored user profile in whichever store currently
// holds the session, keeping the token as is.
func (m *Manager) Refresh(user backend.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, store := range []Store{m.persistent, m.ephemeral} {
		s, err := store.Load()
		if err != nil || s == nil {
			continue
		}
		s.User = user
		return store.Save(s)
	}
	return nil
}

// End clears both stores. Safe to call when nobody is logged in.
func (m *Manager) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.persistent.Clear(); err != nil {
		return err
	}
	return m.ephemeral.Clear()
}

// Token implements backend.TokenSource.
func (m *Manager) Token() string {
	if s := m.Current(); s != nil {
		return s.AccessToken
	}
	return ""
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *backend.User {
	if s := m.Current(); s != nil {
		u := s.User
		return &u
	}
	return nil
}
