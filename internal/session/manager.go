package session

import (
	"errors"
	"sync"
)

// ErrNoSession is returned by Require when nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// Manager is the process' live session. One Manager is created at startup
// and passed to the API client and to every view; login/register Start it,
// logout Ends it.
type Manager struct {
	mu     sync.RWMutex
	store  *Store
	active *Session
}

// NewManager returns a Manager without an active session.
// A nil store keeps the session in memory only.
func NewManager(store *Store) *Manager {
	return &Manager{store: store}
}

// Load creates a Manager and restores the stored session, if any.
func Load(store *Store) (*Manager, error) {
	m := NewManager(store)
	if store == nil {
		return m, nil
	}
	sess, ok, err := store.Read()
	if err != nil {
		return nil, err
	}
	if ok {
		m.active = &sess
	}
	return m, nil
}

// Active returns the current session; ok is false when logged out.
func (m *Manager) Active() (Session, bool) {
	if m == nil {
		return Session{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return Session{}, false
	}
	return *m.active, true
}

// Require returns the active session or ErrNoSession.
func (m *Manager) Require() (Session, error) {
	sess, ok := m.Active()
	if !ok {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Start persists and activates a new session, replacing any previous one.
func (m *Manager) Start(token, displayName string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store != nil {
		if err := m.store.Save(token, displayName); err != nil {
			return Session{}, err
		}
	}
	sess := Session{Token: token, DisplayName: displayName}
	m.active = &sess
	return sess, nil
}

// End clears the stored session and deactivates it.
func (m *Manager) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = nil
	if m.store == nil {
		return nil
	}
	return m.store.Clear()
}
