package marketplace

import "context"

// TripRepository serves the trip history. It is read-only: confirming a
// payment does not write a booking back, and nothing is persisted under a
// storage key. It stays behind this type so a create/cancel path can be
// added without touching consumers.
type TripRepository struct {
	seed SeedProvider
}

func NewTripRepository(seed SeedProvider) *TripRepository {
	return &TripRepository{seed: seed}
}

// List returns every booking visible to the session.
func (r *TripRepository) List(ctx context.Context) ([]Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.seed.Trips(), nil
}

// ForTraveller returns the bookings made by one traveller.
func (r *TripRepository) ForTraveller(ctx context.Context, travellerID string) ([]Booking, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Booking
	for _, b := range all {
		if b.TravellerID == travellerID {
			out = append(out, b)
		}
	}
	return out, nil
}
