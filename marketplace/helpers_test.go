package marketplace

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"unwind/store"
)

func tempManager(t *testing.T) *Manager {
	t.Helper()
	m, err := Open(filepath.Join(t.TempDir(), "unwind.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func memManager(t *testing.T) (*Manager, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return NewManager(mem, DefaultSeed{}), mem
}

func readySession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(tempManager(t))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

// flakyStore wraps a Store and lets tests inject failures and interleaved
// writes from a simulated second process.
type flakyStore struct {
	store.Store

	mu        sync.Mutex
	getErr    map[string]error
	interlope map[string][]byte
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		Store:     store.NewMemory(),
		getErr:    map[string]error{},
		interlope: map[string][]byte{},
	}
}

func (f *flakyStore) Get(ctx context.Context, key string) (store.Record, error) {
	f.mu.Lock()
	err := f.getErr[key]
	f.mu.Unlock()
	if err != nil {
		return store.Record{}, err
	}
	return f.Store.Get(ctx, key)
}

// Put writes the queued interloper value first, once, so the caller's
// expected version is stale.
func (f *flakyStore) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	f.mu.Lock()
	other, ok := f.interlope[key]
	delete(f.interlope, key)
	f.mu.Unlock()
	if ok {
		if _, err := f.Store.Put(ctx, key, other, store.AnyVersion); err != nil {
			return 0, err
		}
	}
	return f.Store.Put(ctx, key, value, expected)
}

func (f *flakyStore) failGet(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.getErr, key)
		return
	}
	f.getErr[key] = err
}

func (f *flakyStore) interleave(key string, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interlope[key] = value
}

func ids(listings []Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}
