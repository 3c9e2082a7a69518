package store

import "sync"

// KV is the persistence substrate for shop-scoped state. Implementations are
// synchronous and never fail from the caller's point of view: backend errors
// are logged and swallowed so a flaky disk or database cannot break a cart
// mutation.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// MemoryKV is a map-backed KV. It backs tests and the unresolved-scope
// fallback where nothing may be persisted anyway.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryKV) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
