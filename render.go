package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"unwind/marketplace"
)

// tableMode reports whether w is an interactive terminal and how wide it is.
// Redirected output gets JSON so scripts can consume it.
func tableMode(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = 100
	}
	return true, width
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) useJSON() (bool, int) {
	tty, width := tableMode(a.out)
	return a.asJSON || !tty, width
}

func (a *app) printListings(listings []marketplace.Listing) error {
	asJSON, width := a.useJSON()
	if asJSON {
		return printJSON(a.out, listings)
	}
	writeListingTable(a.out, listings, a.session.User(), width)
	return nil
}

func writeListingTable(w io.Writer, listings []marketplace.Listing, u marketplace.User, width int) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "No plots found.")
		return
	}
	titleW := width - 62
	if titleW < 20 {
		titleW = 20
	}
	fmt.Fprintf(w, "%-2s %-8s %-*s %-24s %8s %4s %-11s\n", "", "ID", titleW, "Title", "Location", "Price", "★", "Status")
	fmt.Fprintln(w, strings.Repeat("-", titleW+64))
	for _, l := range listings {
		mark := " "
		if u.IsSaved(l.ID) {
			mark = "♥"
		}
		fmt.Fprintf(w, "%-2s %-8s %-*s %-24s %8d %4.1f %-11s\n",
			mark, truncateString(l.ID, 8), titleW, truncateString(l.Title, titleW),
			truncateString(l.Location, 24), l.PricePerNight, l.OverallRating, l.Status)
	}
}

func (a *app) printListing(l marketplace.Listing) error {
	if asJSON, _ := a.useJSON(); asJSON {
		return printJSON(a.out, l)
	}
	writeListingDetail(a.out, l, a.session.User())
	return nil
}

func writeListingDetail(w io.Writer, l marketplace.Listing, u marketplace.User) {
	fmt.Fprintf(w, "%s  (%s)\n", l.Title, l.ID)
	fmt.Fprintf(w, "%s · hosted by %s · %.1f★ · %s\n", l.Location, l.OwnerName, l.OverallRating, l.Status)
	fmt.Fprintf(w, "₹%d / night\n\n%s\n\n", l.PricePerNight, l.Description)
	fmt.Fprintf(w, "Amenities: %s\n", strings.Join(amenityList(l.Amenities), ", "))
	if len(l.Checkpoints) > 0 {
		fmt.Fprintln(w, "Verification:")
		for _, c := range l.Checkpoints {
			mark := "○"
			if c.Verified {
				mark = "✓"
			}
			fmt.Fprintf(w, "  %s %s: %s\n", mark, c.Label, c.Description)
		}
	}
	if len(l.Reviews) > 0 {
		fmt.Fprintln(w, "Reviews:")
		for _, r := range l.Reviews {
			fmt.Fprintf(w, "  %.1f★ %s (%s): %s\n", r.Rating, r.Author, r.Date, r.Comment)
		}
	}
	if u.IsSaved(l.ID) {
		fmt.Fprintln(w, "♥ Saved")
	}
}

func amenityList(am marketplace.Amenities) []string {
	var out []string
	for _, a := range []struct {
		on   bool
		name string
	}{
		{am.EVCharging, "EV charging"},
		{am.Bathroom, "bathroom"},
		{am.WaterHookup, "water hookup"},
		{am.WiFi, "wifi"},
		{am.PetFriendly, "pet friendly"},
	} {
		if a.on {
			out = append(out, a.name)
		}
	}
	if len(out) == 0 {
		return []string{"none"}
	}
	return out
}

func (a *app) printTrips(trips []marketplace.Booking) error {
	if asJSON, _ := a.useJSON(); asJSON {
		return printJSON(a.out, trips)
	}
	if len(trips) == 0 {
		fmt.Fprintln(a.out, "No trips yet.")
		return nil
	}
	for _, t := range trips {
		fmt.Fprintf(a.out, "%-4s %-30s %-20s %s → %s  ₹%d  %s\n",
			t.ID, truncateString(t.PlotTitle, 30), truncateString(t.PlotLocation, 20),
			t.StartDate, t.EndDate, t.TotalPrice, t.Status)
	}
	return nil
}

func (a *app) printConfig(cfg marketplace.SiteConfig) error {
	if asJSON, _ := a.useJSON(); asJSON {
		return printJSON(a.out, cfg)
	}
	fmt.Fprintf(a.out, "%s: %s\n", cfg.SiteName, cfg.Tagline)
	fmt.Fprintf(a.out, "Primary color: %s\nHero image:    %s\n", cfg.PrimaryColor, cfg.HeroImageURL)
	if cfg.LogoURL != "" {
		fmt.Fprintf(a.out, "Logo:          %s\n", cfg.LogoURL)
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
