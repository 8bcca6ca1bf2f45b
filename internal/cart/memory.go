package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps carts in process memory. Used in tests and as the
// fallback when no redis address is configured.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string][]Item{}}
}

func (m *MemoryStore) Load(_ context.Context, session string) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.carts[session]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, session string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make([]Item, len(items))
	copy(saved, items)
	m.carts[session] = saved
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, session)
	return nil
}
