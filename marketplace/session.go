package marketplace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// State is the lifecycle of a Session.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ViewOptions narrows the listing view.
type ViewOptions struct {
	// SavedOnly limits a traveller's view to bookmarked listings.
	SavedOnly bool
	// Query is matched case-insensitively against title and location.
	Query string
}

// Dashboard holds the counters shown on the owner and admin dashboards.
type Dashboard struct {
	Listings  int
	Available int
	Saved     int
}

// Session is the in-memory mirror the UI renders from. It is only ever
// updated with values the repositories returned after a successful write.
type Session struct {
	m   *Manager
	log *log.Logger

	mu       sync.RWMutex
	state    State
	user     User
	signedIn bool
	listings []Listing
	config   SiteConfig
	saved    []string
	trips    []Booking
	warnings []string
	mutating map[Collection]int

	loadMu sync.Mutex
	// one queue per mutable collection
	listingsMu  sync.Mutex
	configMu    sync.Mutex
	bookmarksMu sync.Mutex
}

type Option func(*Session)

// WithLogger routes corrupt-state and load warnings to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.log = l }
}

func NewSession(m *Manager, opts ...Option) *Session {
	s := &Session{
		m:        m,
		log:      log.New(io.Discard, "", 0),
		user:     DemoUser(RoleTraveller),
		mutating: map[Collection]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ------------------ Lifecycle ------------------

// Load reads all four collections concurrently and switches to Ready once
// every one has resolved. A corrupt collection is reset to its default and
// reported through Warnings. Any other failure leaves the session in
// Loading and returns an *InitError; Load can then be retried.
func (s *Session) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	s.state = Loading
	s.mu.Unlock()

	var (
		listings []Listing
		cfg      SiteConfig
		saved    []string
		trips    []Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.recovering(gctx, CollectionListings, func() (err error) {
			listings, err = s.m.Listings.List(gctx)
			return err
		}, func() (err error) {
			listings, err = s.m.Listings.Reset(gctx)
			return err
		})
	})
	g.Go(func() error {
		return s.recovering(gctx, CollectionConfig, func() (err error) {
			cfg, err = s.m.Config.Get(gctx)
			return err
		}, func() (err error) {
			cfg, err = s.m.Config.Reset(gctx)
			return err
		})
	})
	g.Go(func() error {
		return s.recovering(gctx, CollectionBookmarks, func() (err error) {
			saved, err = s.m.Bookmarks.List(gctx)
			return err
		}, func() (err error) {
			saved, err = s.m.Bookmarks.Reset(gctx)
			return err
		})
	})
	g.Go(func() (err error) {
		trips, err = s.m.Trips.List(gctx)
		if err != nil {
			return &InitError{Collection: CollectionTrips, Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Printf("load: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = listings
	s.config = cfg
	s.saved = saved
	s.trips = trips
	s.state = Ready
	return nil
}

// recovering runs op; if it fails with corrupt state the collection is
// reset and op's result replaced by reset's. Other failures become an
// *InitError for c.
func (s *Session) recovering(ctx context.Context, c Collection, op, reset func() error) error {
	err := op()
	if errors.Is(err, ErrCorruptPersistedState) {
		s.warn(fmt.Sprintf("%s: %v; restored defaults", c, err))
		err = reset()
	}
	if err != nil {
		return &InitError{Collection: c, Err: err}
	}
	return ctx.Err()
}

func (s *Session) warn(msg string) {
	s.log.Print(msg)
	s.mu.Lock()
	s.warnings = append(s.warnings, msg)
	s.mu.Unlock()
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Mutating reports whether a write to c is in flight.
func (s *Session) Mutating(c Collection) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mutating[c] > 0
}

// Warnings returns the corrupt-state recoveries seen so far.
func (s *Session) Warnings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.warnings)
}

// ------------------ Identity ------------------

// SignIn switches to the identity for role. The bookmark set is kept.
func (s *Session) SignIn(role Role) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = DemoUser(role)
	s.signedIn = true
	return s.userLocked()
}

func (s *Session) SignOut() {
	s.mu.Lock()
	s.signedIn = false
	s.mu.Unlock()
}

func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

// User returns the current identity with its bookmark set attached.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked()
}

func (s *Session) userLocked() User {
	u := s.user
	u.SavedIDs = slices.Clone(s.saved)
	if u.SavedIDs == nil {
		u.SavedIDs = []string{}
	}
	return u
}

// ------------------ Views ------------------

func (s *Session) readyLocked() error {
	if s.state != Ready {
		return fmt.Errorf("%w (state %s)", ErrNotReady, s.state)
	}
	return nil
}

// Listings returns the role-scoped view: owners see their own listings,
// travellers and admins see everything. SavedOnly applies to travellers.
func (s *Session) Listings(opts ViewOptions) ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return s.visibleLocked(opts), nil
}

func (s *Session) visibleLocked(opts ViewOptions) []Listing {
	q := strings.ToLower(strings.TrimSpace(opts.Query))
	out := []Listing{}
	for _, l := range s.listings {
		switch s.user.Role {
		case RoleOwner:
			if l.OwnerID != s.user.ID {
				continue
			}
		case RoleTraveller:
			if opts.SavedOnly && !slices.Contains(s.saved, l.ID) {
				continue
			}
		}
		if q != "" && !matchesQuery(l, q) {
			continue
		}
		out = append(out, l.clone())
	}
	return out
}

func matchesQuery(l Listing, lowered string) bool {
	return strings.Contains(strings.ToLower(l.Title), lowered) ||
		strings.Contains(strings.ToLower(l.Location), lowered)
}

// Listing returns one listing's detail regardless of role.
func (s *Session) Listing(id string) (Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return Listing{}, err
	}
	for _, l := range s.listings {
		if l.ID == id {
			return l.clone(), nil
		}
	}
	return Listing{}, fmt.Errorf("%w: %s", ErrListingNotFound, id)
}

func (s *Session) Config() (SiteConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return SiteConfig{}, err
	}
	return s.config, nil
}

func (s *Session) Trips() ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return slices.Clone(s.trips), nil
}

// Dashboard counts the listings in the current role's unfiltered view.
func (s *Session) Dashboard() (Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.readyLocked(); err != nil {
		return Dashboard{}, err
	}
	visible := s.visibleLocked(ViewOptions{})
	d := Dashboard{Listings: len(visible), Saved: len(s.saved)}
	for _, l := range visible {
		if l.Status == StatusAvailable {
			d.Available++
		}
	}
	return d, nil
}

// ------------------ Mutations ------------------

// begin marks c as mutating until the returned func is called.
func (s *Session) begin(c Collection) func() {
	s.mu.Lock()
	s.mutating[c]++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.mutating[c]--
		s.mu.Unlock()
	}
}

func (s *Session) checkReady() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readyLocked()
}

// mutate runs op for c. If the stored collection turns out to be corrupt
// it is reset, a warning is recorded, and op runs once more.
func (s *Session) mutate(ctx context.Context, c Collection, op func() error, reset func() error) error {
	err := op()
	if !errors.Is(err, ErrCorruptPersistedState) {
		return err
	}
	s.warn(fmt.Sprintf("%s: %v; restored defaults", c, err))
	if err := reset(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return op()
}

// ToggleSaved flips id in the bookmark set and returns the new set.
func (s *Session) ToggleSaved(ctx context.Context, id string) ([]string, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrBlankID
	}
	s.bookmarksMu.Lock()
	defer s.bookmarksMu.Unlock()
	defer s.begin(CollectionBookmarks)()

	var saved []string
	err := s.mutate(ctx, CollectionBookmarks, func() (err error) {
		saved, err = s.m.Bookmarks.Toggle(ctx, id)
		return err
	}, func() error {
		_, err := s.m.Bookmarks.Reset(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.saved = slices.Clone(saved)
	s.mu.Unlock()
	return saved, nil
}

// SaveListing creates or updates l and mirrors the persisted result.
func (s *Session) SaveListing(ctx context.Context, l Listing) (Listing, error) {
	if err := s.checkReady(); err != nil {
		return Listing{}, err
	}
	if strings.TrimSpace(l.ID) == "" {
		return Listing{}, ErrBlankID
	}
	s.listingsMu.Lock()
	defer s.listingsMu.Unlock()
	defer s.begin(CollectionListings)()

	var listings []Listing
	err := s.mutate(ctx, CollectionListings, func() (err error) {
		listings, err = s.m.Listings.upsert(ctx, l)
		return err
	}, s.resetListings(ctx))
	if err != nil {
		return Listing{}, err
	}

	s.mu.Lock()
	s.listings = listings
	s.mu.Unlock()
	return l.clone(), nil
}

// DeleteListing removes id; unknown ids are a no-op.
func (s *Session) DeleteListing(ctx context.Context, id string) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	s.listingsMu.Lock()
	defer s.listingsMu.Unlock()
	defer s.begin(CollectionListings)()

	var listings []Listing
	err := s.mutate(ctx, CollectionListings, func() (err error) {
		listings, err = s.m.Listings.remove(ctx, id)
		return err
	}, s.resetListings(ctx))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listings = listings
	s.mu.Unlock()
	return nil
}

func (s *Session) resetListings(ctx context.Context) func() error {
	return func() error {
		listings, err := s.m.Listings.Reset(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.listings = listings
		s.mu.Unlock()
		return nil
	}
}

// UpdateConfig replaces the site configuration.
func (s *Session) UpdateConfig(ctx context.Context, cfg SiteConfig) (SiteConfig, error) {
	if err := s.checkReady(); err != nil {
		return SiteConfig{}, err
	}
	s.configMu.Lock()
	defer s.configMu.Unlock()
	defer s.begin(CollectionConfig)()

	updated, err := s.m.Config.Update(ctx, cfg)
	if err != nil {
		return SiteConfig{}, err
	}

	s.mu.Lock()
	s.config = updated
	s.mu.Unlock()
	return updated, nil
}
