package marketplace

import (
	"context"

	"unwind/store"
)

// ListingRepository owns the persisted listing catalog.
//
// Every mutation rewrites the whole collection. Mutations are serialized
// in-process and guarded by the store version across processes, so a
// concurrent writer causes a retry instead of a lost update.
type ListingRepository struct {
	slot *slot[[]Listing]
}

func NewListingRepository(s store.Store, seed SeedProvider) *ListingRepository {
	return &ListingRepository{slot: &slot[[]Listing]{
		store:       s,
		key:         KeyListings,
		decode:      decodeListings,
		encode:      encodeList[Listing],
		seed:        seed.Listings,
		persistSeed: true,
	}}
}

// List returns all listings in stored order, seeding the catalog on first call.
func (r *ListingRepository) List(ctx context.Context) ([]Listing, error) {
	return r.slot.load(ctx)
}

// Get returns a single listing.
func (r *ListingRepository) Get(ctx context.Context, id string) (Listing, error) {
	listings, err := r.slot.load(ctx)
	if err != nil {
		return Listing{}, err
	}
	for _, l := range listings {
		if l.ID == id {
			return l, nil
		}
	}
	return Listing{}, ErrListingNotFound
}

// Upsert replaces the listing with the same id in place, or appends it.
// The caller assigns ids; the returned listing always equals the input.
func (r *ListingRepository) Upsert(ctx context.Context, l Listing) (Listing, error) {
	if _, err := r.upsert(ctx, l); err != nil {
		return Listing{}, err
	}
	return l.clone(), nil
}

// upsert returns the collection as written, including changes another
// writer made before a retry.
func (r *ListingRepository) upsert(ctx context.Context, l Listing) ([]Listing, error) {
	return r.slot.update(ctx, func(cur []Listing) ([]Listing, bool) {
		return upsertListing(cur, l), true
	})
}

// Remove deletes the listing. Removing an unknown id is a no-op and
// leaves the stored collection untouched.
func (r *ListingRepository) Remove(ctx context.Context, id string) error {
	_, err := r.remove(ctx, id)
	return err
}

func (r *ListingRepository) remove(ctx context.Context, id string) ([]Listing, error) {
	return r.slot.update(ctx, func(cur []Listing) ([]Listing, bool) {
		next := removeListing(cur, id)
		return next, len(next) != len(cur)
	})
}

// Reset overwrites the catalog with the seed.
func (r *ListingRepository) Reset(ctx context.Context) ([]Listing, error) {
	listings := r.slot.seed()
	if err := r.slot.replace(ctx, listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// upsertListing returns a new slice with l replacing its id or appended.
func upsertListing(listings []Listing, l Listing) []Listing {
	out := cloneListings(listings)
	for i := range out {
		if out[i].ID == l.ID {
			out[i] = l.clone()
			return out
		}
	}
	return append(out, l.clone())
}

func removeListing(listings []Listing, id string) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if l.ID != id {
			out = append(out, l.clone())
		}
	}
	return out
}
