package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alphafeeds/relay_bot/internal/store"
)

// ErrIndexOutOfRange is returned by RemoveAdmin for a position outside 1..N.
var ErrIndexOutOfRange = errors.New("settings: admin index out of range")

// Manager owns the mutable settings record. Every mutation is serialized
// under one lock and persisted through the store before returning. On a
// store failure the in-memory change is kept and the error is returned so
// the caller can warn the user that the change may not survive a restart.
type Manager struct {
	mu      sync.Mutex
	current store.Settings
	store   store.Store
}

func NewManager(st store.Store) (*Manager, error) {
	s, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("settings.NewManager: %w", err)
	}

	return &Manager{current: s, store: st}, nil
}

// Snapshot returns a copy of the current settings for read-only use.
func (m *Manager) Snapshot() store.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// SetOrigin replaces the origin channel set entirely.
func (m *Manager) SetOrigin(channels []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.OriginChannels = append([]int64(nil), channels...)
	return m.persist()
}

// SetDestination replaces the destination channel set entirely.
func (m *Manager) SetDestination(channels []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.DestinationChannels = append([]int64(nil), channels...)
	return m.persist()
}

// AddAdmin appends username unless it is already present. The bool reports
// whether the list changed; a duplicate is a no-op and nothing is persisted.
func (m *Manager) AddAdmin(username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, admin := range m.current.Admins {
		if admin == username {
			return false, nil
		}
	}

	m.current.Admins = append(m.current.Admins, username)
	return true, m.persist()
}

// RemoveAdmin removes the admin at the 1-based index, preserving the
// relative order of the rest. Out of range leaves the list untouched.
func (m *Manager) RemoveAdmin(index int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 1 || index > len(m.current.Admins) {
		return "", ErrIndexOutOfRange
	}

	removed := m.current.Admins[index-1]
	m.current.Admins = append(m.current.Admins[:index-1], m.current.Admins[index:]...)
	return removed, m.persist()
}

// Pause stops forwarding. The bool reports whether the flag changed.
func (m *Manager) Pause() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Paused {
		return false, nil
	}

	m.current.Paused = true
	return true, m.persist()
}

// Resume restores forwarding. The bool reports whether the flag changed.
func (m *Manager) Resume() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.current.Paused {
		return false, nil
	}

	m.current.Paused = false
	return true, m.persist()
}

// persist must be called with the lock held.
func (m *Manager) persist() error {
	return m.store.Save(m.current.Clone())
}
