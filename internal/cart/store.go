package cart

import (
	"context"
	"sync"
)

// Store abstracts cart persistence behind a small key-value surface so the
// backing medium can change without touching pricing or service logic.
// Load returns (nil, nil) when no cart exists for the session.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps carts in process memory. Used by tests and local tooling.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]Cart)}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := stored
	copied.Items = append([]Item(nil), stored.Items...)
	return &copied, nil
}

func (m *MemoryStore) Save(ctx context.Context, cart *Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *cart
	stored.Items = append([]Item(nil), cart.Items...)
	m.carts[cart.SessionID] = stored
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, sessionID)
	return nil
}
