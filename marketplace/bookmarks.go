package marketplace

import (
	"context"
	"slices"

	"unwind/store"
)

// BookmarkRepository owns the saved-listing set. There is one slot for the
// whole device; it is not partitioned by user.
//
// Toggle is not idempotent: delivering the same toggle twice undoes it.
// Callers that retry must check the returned set rather than re-toggle.
type BookmarkRepository struct {
	slot *slot[[]string]
}

func NewBookmarkRepository(s store.Store) *BookmarkRepository {
	return &BookmarkRepository{slot: &slot[[]string]{
		store:  s,
		key:    KeyBookmarks,
		decode: decodeBookmarks,
		encode: encodeList[string],
		seed:   func() []string { return []string{} },
	}}
}

// List returns the saved listing ids.
func (r *BookmarkRepository) List(ctx context.Context) ([]string, error) {
	return r.slot.load(ctx)
}

// Toggle removes id if present and adds it otherwise, returning the full
// post-toggle set.
func (r *BookmarkRepository) Toggle(ctx context.Context, id string) ([]string, error) {
	return r.slot.update(ctx, func(cur []string) ([]string, bool) {
		if i := slices.Index(cur, id); i >= 0 {
			return slices.Delete(slices.Clone(cur), i, i+1), true
		}
		return append(slices.Clone(cur), id), true
	})
}

// Reset clears the set.
func (r *BookmarkRepository) Reset(ctx context.Context) ([]string, error) {
	empty := []string{}
	if err := r.slot.replace(ctx, empty); err != nil {
		return nil, err
	}
	return empty, nil
}
