package persistence

import (
	"context"
	"sync"
)

// MemorySink keeps values in process memory
type MemorySink struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySink creates an empty MemorySink
func NewMemorySink() *MemorySink {
	return &MemorySink{values: make(map[string]string)}
}

// Write stores value under key
func (m *MemorySink) Write(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Get returns the value stored under key
func (m *MemorySink) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

// Keys returns the number of stored keys
func (m *MemorySink) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Close is a no-op
func (m *MemorySink) Close() error {
	return nil
}
