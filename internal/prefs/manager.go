package prefs

import (
	"context"
	"sync"
)

// Manager hands out one Store per user, lazily loaded, with KV keys
// namespaced by user id so the same table backs every account.
type Manager struct {
	kv KV

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(kv KV) *Manager {
	return &Manager{
		kv:     kv,
		stores: make(map[string]*Store),
	}
}

// ForUser returns the user's store, initializing it from durable storage on
// first access. Initialize is once-per-store, so concurrent first requests
// for the same user share a single load.
func (m *Manager) ForUser(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	s, ok := m.stores[userID]
	if !ok {
		s = NewStore(m.kv, "favorites:"+userID, "history:"+userID)
		m.stores[userID] = s
	}
	m.mu.Unlock()

	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close shuts down every store, draining pending writes.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.stores {
		s.Close()
	}
}
