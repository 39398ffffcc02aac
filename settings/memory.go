package settings

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Values
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Values)}
}

func (m *MemoryStore) Get(_ context.Context, namespace string) (Values, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[namespace].clone(), nil
}

func (m *MemoryStore) Set(_ context.Context, namespace string, values Values) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.data[namespace]
	if !ok {
		ns = make(Values, len(values))
		m.data[namespace] = ns
	}
	for k, v := range values {
		ns[k] = v
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
