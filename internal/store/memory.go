// apps/go-term/internal/store/memory.go
//
// In-memory solution cache.
// Used when no SQLite cache path is configured, and in tests.
//
// Characteristics:
//   - Stores one solution per date key in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits.

package store

import (
	"context"
	"sync"
)

// Memory is a map-backed solution cache.
type Memory struct {
	mu        sync.RWMutex      // guards solutions
	solutions map[string]string // keyed by date
}

// NewMemory constructs an empty cache.
func NewMemory() *Memory {
	return &Memory{solutions: make(map[string]string)}
}

// Get looks up the solution stored for date.
func (m *Memory) Get(ctx context.Context, date string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.solutions[date]
	return w, ok, nil
}

// Put adds or replaces the solution for date.
func (m *Memory) Put(ctx context.Context, date, solution string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.solutions[date] = solution
	return nil
}
