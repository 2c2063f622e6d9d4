// Package status is a lightweight runtime counter registry
// Navigation components cache pointers once via Get; hot loops then write
// to the atomics directly without locking
package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Registry is the counter facade shared by one host application
type Registry struct {
	Ints *CounterMap
}

func NewRegistry() *Registry {
	return &Registry{Ints: NewCounterMap()}
}

// Snapshot returns current counter values in sorted key order
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}

// CounterMap registers named int64 counters
// Registration takes a lock; the returned pointer is lock-free afterwards
type CounterMap struct {
	mu    sync.RWMutex
	items map[string]*atomic.Int64
}

func NewCounterMap() *CounterMap {
	return &CounterMap{items: make(map[string]*atomic.Int64)}
}

// Get returns the counter for key, creating it on first use
func (m *CounterMap) Get(key string) *atomic.Int64 {
	m.mu.RLock()
	if ptr, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr := new(atomic.Int64)
	m.items[key] = ptr
	return ptr
}

// Range iterates counters in sorted key order
func (m *CounterMap) Range(fn func(key string, ptr *atomic.Int64)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.items[k])
	}
}

// Count returns the number of registered counters
func (m *CounterMap) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
