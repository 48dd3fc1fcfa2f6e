package marketplace

import (
	"context"
	"errors"

	"unwind/store"
)

// Manager wires every repository to one store. It is the explicit context
// object handed to sessions and commands in place of package-level state.
type Manager struct {
	store store.Store

	Listings  *ListingRepository
	Config    *ConfigRepository
	Bookmarks *BookmarkRepository
	Trips     *TripRepository
}

// Open opens (or creates) the SQLite store at dbPath with the default seed.
func Open(dbPath string) (*Manager, error) {
	s, err := store.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	return NewManager(s, DefaultSeed{}), nil
}

// NewManager builds repositories over an existing store.
func NewManager(s store.Store, seed SeedProvider) *Manager {
	return &Manager{
		store:     s,
		Listings:  NewListingRepository(s, seed),
		Config:    NewConfigRepository(s, seed),
		Bookmarks: NewBookmarkRepository(s),
		Trips:     NewTripRepository(seed),
	}
}

// Close closes the underlying store.
func (m *Manager) Close() error { return m.store.Close() }

// Store exposes the backing store for diagnostics.
func (m *Manager) Store() store.Store { return m.store }

// ResetAll restores every persisted collection to its first-run value.
func (m *Manager) ResetAll(ctx context.Context) error {
	_, errL := m.Listings.Reset(ctx)
	_, errC := m.Config.Reset(ctx)
	_, errB := m.Bookmarks.Reset(ctx)
	return errors.Join(errL, errC, errB)
}
