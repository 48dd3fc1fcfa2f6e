package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"unwind/marketplace"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	t.Setenv("UNWIND_ROLE", "")
	return filepath.Join(t.TempDir(), "unwind.db")
}

// execCLI runs one invocation against db and returns what it printed.
func execCLI(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), append([]string{"--db", db}, args...), strings.NewReader(stdin), &out)
	return out.String(), err
}

func mustCLI(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := execCLI(t, db, "", args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func listingsJSON(t *testing.T, db string, args ...string) []marketplace.Listing {
	t.Helper()
	var listings []marketplace.Listing
	out := mustCLI(t, db, args...)
	if err := json.Unmarshal([]byte(out), &listings); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return listings
}

func TestListingsByRole(t *testing.T) {
	db := tempDBPath(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"traveller sees all", []string{"--role", "traveller", "listings"}, 8},
		{"admin sees all", []string{"--role", "admin", "listings"}, 8},
		{"owner sees own", []string{"--role", "owner", "listings"}, 3},
		{"search by location", []string{"--role", "traveller", "listings", "-s", "goa"}, 1},
		{"saved starts empty", []string{"--role", "traveller", "listings", "--saved"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listingsJSON(t, db, tt.args...); len(got) != tt.want {
				t.Fatalf("want %d listings, got %d", tt.want, len(got))
			}
		})
	}
}

func TestOwnerAddEditDelete(t *testing.T) {
	db := tempDBPath(t)

	out := mustCLI(t, db, "--role", "owner", "listing", "add",
		"--title", "Riverside Meadow", "--location", "Rishikesh, Uttarakhand",
		"--price", "1800", "--amenities", "wifi,pets")
	id := regexp.MustCompile(`Saved (p\w+)`).FindStringSubmatch(out)
	if id == nil {
		t.Fatalf("no id in %q", out)
	}

	own := listingsJSON(t, db, "--role", "owner", "listings")
	if len(own) != 4 {
		t.Fatalf("want 4 owned listings after add, got %d", len(own))
	}
	added := own[len(own)-1]
	if added.ID != id[1] || added.OwnerID != "o1" || added.Status != marketplace.StatusAvailable || added.OverallRating != 5.0 {
		t.Fatalf("unexpected new listing %+v", added)
	}
	if !added.Amenities.WiFi || !added.Amenities.PetFriendly || added.Amenities.Bathroom {
		t.Fatalf("unexpected amenities %+v", added.Amenities)
	}

	mustCLI(t, db, "--role", "owner", "listing", "edit", id[1], "--price", "2100", "--status", "maintenance")
	var edited marketplace.Listing
	if err := json.Unmarshal([]byte(mustCLI(t, db, "listing", "show", id[1])), &edited); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if edited.PricePerNight != 2100 || edited.Status != marketplace.StatusMaintenance || edited.Title != "Riverside Meadow" {
		t.Fatalf("edit not applied: %+v", edited)
	}

	mustCLI(t, db, "--role", "owner", "listing", "delete", id[1])
	if _, err := execCLI(t, db, "", "listing", "show", id[1]); !errors.Is(err, marketplace.ErrListingNotFound) {
		t.Fatalf("want ErrListingNotFound, got %v", err)
	}
	if got := len(listingsJSON(t, db, "listings")); got != 8 {
		t.Fatalf("want 8 listings after delete, got %d", got)
	}
}

func TestPermissions(t *testing.T) {
	db := tempDBPath(t)

	tests := []struct {
		name string
		args []string
	}{
		{"traveller cannot add", []string{"--role", "traveller", "listing", "add", "--title", "x", "--location", "y"}},
		{"owner cannot edit others", []string{"--role", "owner", "listing", "edit", "p3", "--price", "1"}},
		{"owner cannot delete others", []string{"--role", "owner", "listing", "delete", "p4"}},
		{"traveller cannot change config", []string{"--role", "traveller", "config", "set", "--site-name", "x"}},
		{"owner cannot reset", []string{"--role", "owner", "reset"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execCLI(t, db, "", tt.args...); !errors.Is(err, errForbidden) {
				t.Fatalf("want errForbidden, got %v", err)
			}
		})
	}
	if got := len(listingsJSON(t, db, "listings")); got != 8 {
		t.Fatalf("refused commands changed the catalog: %d listings", got)
	}
}

func TestInvalidListingRejected(t *testing.T) {
	db := tempDBPath(t)
	_, err := execCLI(t, db, "", "--role", "owner", "listing", "add", "--location", "Pune")
	if !errors.Is(err, marketplace.ErrInvalidListing) {
		t.Fatalf("want ErrInvalidListing, got %v", err)
	}
}

func TestSavedTogglePersists(t *testing.T) {
	db := tempDBPath(t)

	out := mustCLI(t, db, "saved", "toggle", "p3")
	if !strings.Contains(out, "Added to saved plots: p3") {
		t.Fatalf("unexpected output %q", out)
	}
	saved := listingsJSON(t, db, "saved")
	if len(saved) != 1 || saved[0].ID != "p3" {
		t.Fatalf("want [p3], got %v", saved)
	}

	// Bookmarks survive a role switch between invocations.
	mustCLI(t, db, "--role", "admin", "dashboard")
	out = mustCLI(t, db, "saved", "toggle", "p3")
	if !strings.Contains(out, "Removed from saved plots: p3") {
		t.Fatalf("unexpected output %q", out)
	}
	if got := listingsJSON(t, db, "saved"); len(got) != 0 {
		t.Fatalf("want no saved listings, got %d", len(got))
	}
}

func TestSavedToggleBlankID(t *testing.T) {
	db := tempDBPath(t)
	mustCLI(t, db, "saved", "toggle", "p1")

	if _, err := execCLI(t, db, "", "saved", "toggle", ""); !errors.Is(err, marketplace.ErrBlankID) {
		t.Fatalf("want ErrBlankID, got %v", err)
	}
	saved := listingsJSON(t, db, "saved")
	if len(saved) != 1 || saved[0].ID != "p1" {
		t.Fatalf("saved set changed: %v", saved)
	}
}

func TestShellUsage(t *testing.T) {
	db := tempDBPath(t)
	script := "toggle p1\ntoggle\nshow\nshare\nprice p1\nstatus\ndelete\nsignin\nexit\n"

	out, err := execCLI(t, db, script, "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	for _, want := range []string{
		"Usage: toggle <id>",
		"Usage: show <id>",
		"Usage: share <id>",
		"Usage: price <id> <amount>",
		"Usage: status <id> <available|booked|maintenance>",
		"Usage: delete <id>",
		"Usage: signin <traveller|owner|admin>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("shell output missing %q", want)
		}
	}
	if strings.Contains(out, "Error:") {
		t.Fatalf("missing arguments reached the session:\n%s", out)
	}
	saved := listingsJSON(t, db, "saved")
	if len(saved) != 1 || saved[0].ID != "p1" {
		t.Fatalf("saved set changed: %v", saved)
	}
}

func TestConfigSet(t *testing.T) {
	db := tempDBPath(t)

	_, err := execCLI(t, db, "", "--role", "admin", "config", "set", "--primary-color", "indigo")
	if !errors.Is(err, marketplace.ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}

	mustCLI(t, db, "--role", "admin", "config", "set", "--primary-color", "#10b981", "--site-name", "UnWind India")
	var cfg marketplace.SiteConfig
	if err := json.Unmarshal([]byte(mustCLI(t, db, "config")), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.PrimaryColor != "#10b981" || cfg.SiteName != "UnWind India" {
		t.Fatalf("config not updated: %+v", cfg)
	}
	if cfg.Tagline != (marketplace.DefaultSeed{}).SiteConfig().Tagline {
		t.Fatalf("unset fields must be kept, tagline %q", cfg.Tagline)
	}

	out := mustCLI(t, db, "info", "about")
	if !strings.HasPrefix(out, "About UnWind India") {
		t.Fatalf("unexpected info page %q", out)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	db := tempDBPath(t)
	mustCLI(t, db, "--role", "admin", "listing", "delete", "p1")
	mustCLI(t, db, "saved", "toggle", "p2")

	mustCLI(t, db, "--role", "admin", "reset")

	if got := len(listingsJSON(t, db, "listings")); got != 8 {
		t.Fatalf("want 8 listings after reset, got %d", got)
	}
	if got := len(listingsJSON(t, db, "saved")); got != 0 {
		t.Fatalf("want empty saved set after reset, got %d", got)
	}
}

func TestShellSession(t *testing.T) {
	db := tempDBPath(t)
	script := strings.Join([]string{
		"list beach",
		"toggle p1",
		"share p1",
		"trips",
		"signout",
		"list",
		"signin owner",
		"price p1 4200",
		"price p3 10",
		"dashboard",
		"exit",
	}, "\n")

	out, err := execCLI(t, db, script, "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	for _, want := range []string{
		"Welcome to UnWind",
		"Added to saved plots: p1",
		"Check out this amazing sanctuary:",
		"Signed out. Use 'signin <role>' first.",
		"Signed in as Priya Patel (owner)",
		"Saved p1",
		"not permitted for this role",
		"Plots: 3  Available: 3  Saved: 1",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("shell output missing %q", want)
		}
	}

	var l marketplace.Listing
	if err := json.Unmarshal([]byte(mustCLI(t, db, "listing", "show", "p1")), &l); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if l.PricePerNight != 4200 {
		t.Fatalf("shell edit not persisted: %d", l.PricePerNight)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    marketplace.Role
		wantErr bool
	}{
		{"", marketplace.RoleTraveller, false},
		{"traveller", marketplace.RoleTraveller, false},
		{"Owner", marketplace.RoleOwner, false},
		{" ADMIN ", marketplace.RoleAdmin, false},
		{"guest", "", true},
	}
	for _, tt := range tests {
		got, err := parseRole(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseRole(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestParseAmenities(t *testing.T) {
	am := parseAmenities([]string{"EV", " water ", "unknown", "petFriendly"})
	want := marketplace.Amenities{EVCharging: true, WaterHookup: true, PetFriendly: true}
	if am != want {
		t.Fatalf("want %+v, got %+v", want, am)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Goa", 10, "Goa"},
		{"Serene Beachside Pitch", 10, "Serene ..."},
		{"Rishikesh", 2, "Ri"},
		{"ऋषिकेश घाट", 5, "ऋष..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
