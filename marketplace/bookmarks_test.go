package marketplace

import (
	"context"
	"errors"
	"slices"
	"testing"

	"unwind/store"
)

func TestBookmarksEmptyOnFirstRun(t *testing.T) {
	m, mem := memManager(t)
	ids, err := m.Bookmarks.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("want empty set, got %v", ids)
	}
	if mem.Writes() != 0 {
		t.Fatalf("reading an empty set should not write, got %d writes", mem.Writes())
	}
}

func TestToggleReturnsFullSet(t *testing.T) {
	m := tempManager(t)
	ctx := context.Background()

	got, err := m.Bookmarks.Toggle(ctx, "p1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got, _ = m.Bookmarks.Toggle(ctx, "p4")
	if !slices.Equal(got, []string{"p1", "p4"}) {
		t.Fatalf("unexpected set %v", got)
	}
	got, _ = m.Bookmarks.Toggle(ctx, "p1")
	if !slices.Equal(got, []string{"p4"}) {
		t.Fatalf("unexpected set %v", got)
	}
	stored, _ := m.Bookmarks.List(ctx)
	if !slices.Equal(stored, got) {
		t.Fatalf("returned set %v differs from stored %v", got, stored)
	}
}

func TestToggleTwiceRestoresSet(t *testing.T) {
	tests := []struct {
		name  string
		start []string
		id    string
	}{
		{name: "empty set", start: nil, id: "p1"},
		{name: "absent id", start: []string{"p2", "p3"}, id: "p1"},
		{name: "present id", start: []string{"p2", "p1", "p3"}, id: "p1"},
		{name: "only member", start: []string{"p1"}, id: "p1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := memManager(t)
			ctx := context.Background()
			for _, id := range tc.start {
				if _, err := m.Bookmarks.Toggle(ctx, id); err != nil {
					t.Fatalf("setup toggle: %v", err)
				}
			}
			before, _ := m.Bookmarks.List(ctx)

			m.Bookmarks.Toggle(ctx, tc.id)
			after, err := m.Bookmarks.Toggle(ctx, tc.id)
			if err != nil {
				t.Fatalf("toggle: %v", err)
			}
			a, b := slices.Clone(after), slices.Clone(before)
			slices.Sort(a)
			slices.Sort(b)
			if !slices.Equal(a, b) {
				t.Fatalf("want %v, got %v", b, a)
			}
		})
	}
}

func TestCorruptBookmarks(t *testing.T) {
	for _, raw := range []string{`"p1"`, `["p1","p1"]`, `[""]`, `[1,2]`} {
		m, mem := memManager(t)
		ctx := context.Background()
		mem.Put(ctx, KeyBookmarks, []byte(raw), store.AnyVersion)
		if _, err := m.Bookmarks.Toggle(ctx, "p9"); !errors.Is(err, ErrCorruptPersistedState) {
			t.Fatalf("%s: want ErrCorruptPersistedState, got %v", raw, err)
		}
	}
}

func TestToggleRefusesUndecodableSet(t *testing.T) {
	m, mem := memManager(t)
	ctx := context.Background()
	m.Bookmarks.Toggle(ctx, "p1")
	m.Bookmarks.Toggle(ctx, "p2")
	writes := mem.Writes()

	if _, err := m.Bookmarks.Toggle(ctx, ""); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("want ErrInvalidValue, got %v", err)
	}
	if mem.Writes() != writes {
		t.Fatalf("refused toggle wrote to the store")
	}
	got, err := m.Bookmarks.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !slices.Equal(got, []string{"p1", "p2"}) {
		t.Fatalf("want [p1 p2], got %v", got)
	}
}
