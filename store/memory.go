package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Memory is an in-process Store for tests and throwaway sessions.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	writes  int
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{records: map[string]Record{}}
}

func (m *Memory) Get(_ context.Context, key string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{Value: slices.Clone(rec.Value), Version: rec.Version}, nil
}

func (m *Memory) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	current := m.records[key].Version
	if !versionMatches(current, expected) {
		return 0, fmt.Errorf("put %s: have version %d, want %d: %w", key, current, expected, ErrConflict)
	}
	m.records[key] = Record{Value: slices.Clone(value), Version: current + 1}
	m.writes++
	return current + 1, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Writes reports how many successful Puts the store has seen.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *Memory) Close() error { return nil }
