package prefs

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[Scope]map[string]string
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: map[Scope]map[string]string{}}
}

func (m *MemoryBackend) Get(_ context.Context, scope Scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[scope][key]
	return v, ok, nil
}

func (m *MemoryBackend) Put(_ context.Context, scope Scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[scope] == nil {
		m.values[scope] = map[string]string{}
	}
	m.values[scope][key] = value
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, scope Scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values[scope], key)
	return nil
}

// Raw returns the stored JSON for key, for assertions in tests.
func (m *MemoryBackend) Raw(scope Scope, key string) (string, bool) {
	v, ok, _ := m.Get(context.Background(), scope, key)
	return v, ok
}
