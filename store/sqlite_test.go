package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func tempSQLite(t *testing.T) *SQLite {
	t.Helper()
	dir := t.TempDir()
	s, err := OpenSQLite(filepath.Join(dir, "nested", "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// backends runs fn against every Store implementation.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, tempSQLite(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
}

func TestGetAbsentKey(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		_, err := s.Get(context.Background(), "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestPutThenGet(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		v, err := s.Put(ctx, "k", []byte(`["a"]`), AnyVersion)
		if err != nil {
			t.Fatalf("put: %v", err)
		}
		if v != 1 {
			t.Fatalf("want version 1, got %d", v)
		}
		v, err = s.Put(ctx, "k", []byte(`["a","b"]`), AnyVersion)
		if err != nil {
			t.Fatalf("put again: %v", err)
		}
		if v != 2 {
			t.Fatalf("want version 2, got %d", v)
		}
		rec, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(rec.Value) != `["a","b"]` || rec.Version != 2 {
			t.Fatalf("unexpected record %q v%d", rec.Value, rec.Version)
		}
	})
}

func TestPutVersionChecks(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		tests := []struct {
			name     string
			expected int64
			wantErr  bool
		}{
			{name: "create requires absence", expected: 0, wantErr: false},
			{name: "second create conflicts", expected: 0, wantErr: true},
			{name: "matching version", expected: 1, wantErr: false},
			{name: "stale version", expected: 1, wantErr: true},
			{name: "unconditional", expected: AnyVersion, wantErr: false},
		}
		for _, tc := range tests {
			_, err := s.Put(ctx, "k", []byte("{}"), tc.expected)
			if tc.wantErr && !errors.Is(err, ErrConflict) {
				t.Fatalf("%s: want ErrConflict, got %v", tc.name, err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
		}
	})
}

func TestDeleteAndKeys(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, k := range []string{"b", "a", "c"} {
			if _, err := s.Put(ctx, k, []byte("1"), AnyVersion); err != nil {
				t.Fatalf("put %s: %v", k, err)
			}
		}
		if err := s.Delete(ctx, "b"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := s.Delete(ctx, "nope"); err != nil {
			t.Fatalf("delete absent: %v", err)
		}
		keys, err := s.Keys(ctx)
		if err != nil {
			t.Fatalf("keys: %v", err)
		}
		if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
			t.Fatalf("unexpected keys %v", keys)
		}
	})
}

func TestChecksumMismatchIsCorrupt(t *testing.T) {
	s := tempSQLite(t)
	ctx := context.Background()
	if _, err := s.Put(ctx, "k", []byte(`{"a":1}`), AnyVersion); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE kv SET value=? WHERE key=?`, []byte(`{"a":2}`), "k"); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	_, err := s.Get(ctx, "k")
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("want ErrCorrupt, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Put(context.Background(), "k", []byte("v"), AnyVersion); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	rec, err := s.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(rec.Value) != "v" || rec.Version != 1 {
		t.Fatalf("unexpected record %q v%d", rec.Value, rec.Version)
	}
}

func TestMemoryWritesCounter(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Put(ctx, "k", []byte("1"), AnyVersion)
	m.Put(ctx, "k", []byte("2"), 5)
	if m.Writes() != 1 {
		t.Fatalf("want 1 write, got %d", m.Writes())
	}
}
