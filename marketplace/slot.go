package marketplace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"unwind/store"
)

// Collection names one independently persisted (or seeded) collection.
type Collection string

const (
	CollectionListings  Collection = "listings"
	CollectionConfig    Collection = "config"
	CollectionBookmarks Collection = "bookmarks"
	CollectionTrips     Collection = "trips"
)

// Storage keys, one per persisted collection.
const (
	KeyListings  = "unwind_plots_data"
	KeyConfig    = "unwind_site_config"
	KeyBookmarks = "unwind_user_saved_ids"
)

// maxWriteAttempts bounds the re-read/re-apply loop when another writer
// bumps the version between our read and our write.
const maxWriteAttempts = 3

// slot binds one storage key to its codec and first-run value. All access
// goes through mu so operations on one collection resolve in issue order.
type slot[T any] struct {
	store  store.Store
	key    string
	decode func([]byte) (T, error)
	encode func(T) ([]byte, error)
	seed   func() T
	// persistSeed writes the seed through on first read so later reads see
	// the stored copy instead of calling seed again.
	persistSeed bool

	mu sync.Mutex
}

// read returns the stored value and its version. Version 0 means absent.
func (s *slot[T]) read(ctx context.Context) (T, int64, error) {
	var zero T
	rec, err := s.store.Get(ctx, s.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return zero, 0, nil
	case errors.Is(err, store.ErrCorrupt):
		return zero, 0, &CorruptStateError{Key: s.key, Err: err}
	case err != nil:
		return zero, 0, fmt.Errorf("read %s: %w", s.key, err)
	}
	v, err := s.decode(rec.Value)
	if err != nil {
		return zero, 0, &CorruptStateError{Key: s.key, Err: err}
	}
	return v, rec.Version, nil
}

// write stores v. A value that would not decode again is refused, so a
// bad mutation costs only itself and never the stored collection.
func (s *slot[T]) write(ctx context.Context, v T, expected int64) (int64, error) {
	data, err := s.encode(v)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", s.key, err)
	}
	if _, err := s.decode(data); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, s.key, err)
	}
	return s.store.Put(ctx, s.key, data, expected)
}

// loadLocked reads the value, seeding it on first access. If another
// process seeds between our read and write we keep their copy.
func (s *slot[T]) loadLocked(ctx context.Context) (T, int64, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		v, version, err := s.read(ctx)
		if err != nil || version > 0 {
			return v, version, err
		}
		v = s.seed()
		if !s.persistSeed {
			return v, 0, nil
		}
		version, err = s.write(ctx, v, 0)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			var zero T
			return zero, 0, fmt.Errorf("seed %s: %w", s.key, err)
		}
		return v, version, nil
	}
	var zero T
	return zero, 0, fmt.Errorf("seed %s: %w", s.key, ErrConflict)
}

func (s *slot[T]) load(ctx context.Context) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.loadLocked(ctx)
	return v, err
}

// update performs read-modify-write. fn reports whether anything changed;
// unchanged values are not written back.
func (s *slot[T]) update(ctx context.Context, fn func(T) (T, bool)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		cur, version, err := s.loadLocked(ctx)
		if err != nil {
			return zero, err
		}
		next, changed := fn(cur)
		if !changed {
			return cur, nil
		}
		if _, err := s.write(ctx, next, version); err != nil {
			if errors.Is(err, store.ErrConflict) {
				continue
			}
			return zero, fmt.Errorf("write %s: %w", s.key, err)
		}
		return next, nil
	}
	return zero, fmt.Errorf("write %s: %w", s.key, ErrConflict)
}

// replace overwrites the stored value regardless of its current contents.
func (s *slot[T]) replace(ctx context.Context, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.write(ctx, v, store.AnyVersion); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}
