package main

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"unwind/marketplace"
)

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session: browse, save and manage plots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.runShell(cmd.Context(), bufio.NewScanner(cmd.InOrStdin()))
			return nil
		},
	}
}

func (a *app) runShell(ctx context.Context, sc *bufio.Scanner) {
	cfg, err := a.session.Config()
	if err == nil {
		fmt.Fprintf(a.out, "Welcome to %s. %s\n", cfg.SiteName, cfg.Tagline)
	}
	for _, w := range a.session.Warnings() {
		fmt.Fprintf(a.out, "Warning: %s\n", w)
	}
	a.shellHelp()

	for {
		fmt.Fprintf(a.out, "\n[%s] > ", strings.ToLower(string(a.session.User().Role)))
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		verb, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch verb {
		case "", "signin", "help", "exit", "quit":
		default:
			if !a.session.SignedIn() {
				fmt.Fprintln(a.out, "Signed out. Use 'signin <role>' first.")
				continue
			}
		}

		if usage, ok := shellUsage[verb]; ok && len(strings.Fields(arg)) < usage.args {
			fmt.Fprintf(a.out, "Usage: %s\n", usage.text)
			continue
		}

		var err error
		switch verb {
		case "":
			continue
		case "list":
			err = a.shellList(marketplace.ViewOptions{Query: arg})
		case "saved":
			err = a.shellList(marketplace.ViewOptions{SavedOnly: true})
		case "show":
			err = a.shellShow(arg)
		case "share":
			var l marketplace.Listing
			if l, err = a.session.Listing(arg); err == nil {
				fmt.Fprintln(a.out, marketplace.ShareText(l))
			}
		case "toggle":
			err = a.toggleSaved(ctx, arg)
		case "trips":
			err = a.shellTrips()
		case "config":
			if cfg, err = a.session.Config(); err == nil {
				err = a.printConfig(cfg)
			}
		case "info":
			err = a.shellInfo(arg)
		case "dashboard":
			var d marketplace.Dashboard
			if d, err = a.session.Dashboard(); err == nil {
				fmt.Fprintf(a.out, "Plots: %d  Available: %d  Saved: %d\n", d.Listings, d.Available, d.Saved)
			}
		case "add":
			err = a.shellAdd(ctx, sc)
		case "price":
			err = a.shellPrice(ctx, arg)
		case "status":
			err = a.shellStatus(ctx, arg)
		case "delete":
			err = a.shellDelete(ctx, sc, arg)
		case "signin":
			var role marketplace.Role
			if role, err = parseRole(arg); err == nil {
				u := a.session.SignIn(role)
				fmt.Fprintf(a.out, "Signed in as %s (%s)\n", u.Name, strings.ToLower(string(u.Role)))
			}
		case "signout":
			a.session.SignOut()
			fmt.Fprintln(a.out, "Signed out. Use 'signin <role>' to continue.")
		case "help":
			a.shellHelp()
		case "exit", "quit":
			fmt.Fprintln(a.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command. Type 'help' for the list.")
		}
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

// shellUsage lists the commands that need arguments.
var shellUsage = map[string]struct {
	args int
	text string
}{
	"show":   {1, "show <id>"},
	"share":  {1, "share <id>"},
	"toggle": {1, "toggle <id>"},
	"info":   {1, "info <privacy|safety|support|about|contact>"},
	"price":  {2, "price <id> <amount>"},
	"status": {2, "status <id> <available|booked|maintenance>"},
	"delete": {1, "delete <id>"},
	"signin": {1, "signin <traveller|owner|admin>"},
}

func (a *app) shellHelp() {
	fmt.Fprintln(a.out, "Available commands:")
	fmt.Fprintln(a.out, "  Browse: list [query], saved, show <id>, share <id>, toggle <id>, trips")
	fmt.Fprintln(a.out, "  Site: config, info <privacy|safety|support|about|contact>, dashboard")
	fmt.Fprintln(a.out, "  Owners: add, price <id> <amount>, status <id> <status>, delete <id>")
	fmt.Fprintln(a.out, "  Account: signin <traveller|owner|admin>, signout")
	fmt.Fprintln(a.out, "  System: help, exit")
}

func (a *app) shellList(opts marketplace.ViewOptions) error {
	listings, err := a.session.Listings(opts)
	if err != nil {
		return err
	}
	_, width := tableMode(a.out)
	writeListingTable(a.out, listings, a.session.User(), max(width, 100))
	return nil
}

func (a *app) shellShow(id string) error {
	l, err := a.session.Listing(id)
	if err != nil {
		return err
	}
	writeListingDetail(a.out, l, a.session.User())
	return nil
}

func (a *app) shellTrips() error {
	if a.session.User().Role != marketplace.RoleTraveller {
		return fmt.Errorf("%w: trips are shown to travellers", errForbidden)
	}
	trips, err := a.session.Trips()
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		fmt.Fprintln(a.out, "No trips yet.")
	}
	for _, t := range trips {
		fmt.Fprintf(a.out, "%-4s %-30s %s to %s  %d  %s\n", t.ID, truncateString(t.PlotTitle, 30), t.StartDate, t.EndDate, t.TotalPrice, t.Status)
	}
	return nil
}

func (a *app) shellInfo(page string) error {
	if !slices.Contains(infoPages, page) {
		return fmt.Errorf("unknown page %q", page)
	}
	cfg, err := a.session.Config()
	if err != nil {
		return err
	}
	title, text := infoPage(cfg, page)
	fmt.Fprintf(a.out, "%s\n\n%s\n", title, text)
	return nil
}

func prompt(a *app, sc *bufio.Scanner, label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func (a *app) shellAdd(ctx context.Context, sc *bufio.Scanner) error {
	if err := a.require(marketplace.RoleOwner, marketplace.RoleAdmin); err != nil {
		return err
	}
	l := marketplace.NewListingDraft()
	var ok bool
	if l.Title, ok = prompt(a, sc, "Title: "); !ok {
		return nil
	}
	if l.Location, ok = prompt(a, sc, "Location: "); !ok {
		return nil
	}
	if l.Description, ok = prompt(a, sc, "Description: "); !ok {
		return nil
	}
	price, ok := prompt(a, sc, fmt.Sprintf("Price per night [%d]: ", l.PricePerNight))
	if !ok {
		return nil
	}
	if price != "" {
		n, err := strconv.ParseInt(price, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid price: %s", price)
		}
		l.PricePerNight = n
	}
	am, ok := prompt(a, sc, "Amenities ("+strings.Join(amenityNames, ",")+"): ")
	if !ok {
		return nil
	}
	l.Amenities = parseAmenities(strings.Split(am, ","))
	return a.saveListing(ctx, marketplace.PrepareListing(l, a.session.User()))
}

func (a *app) editable(id string) (marketplace.Listing, error) {
	l, err := a.session.Listing(id)
	if err != nil {
		return l, err
	}
	return l, a.canEdit(l)
}

func (a *app) shellPrice(ctx context.Context, arg string) error {
	id, amount, _ := strings.Cut(arg, " ")
	l, err := a.editable(id)
	if err != nil {
		return err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(amount), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid price: %s", amount)
	}
	l.PricePerNight = n
	return a.saveListing(ctx, l)
}

func (a *app) shellStatus(ctx context.Context, arg string) error {
	id, status, _ := strings.Cut(arg, " ")
	l, err := a.editable(id)
	if err != nil {
		return err
	}
	l.Status = marketplace.ListingStatus(strings.ToLower(strings.TrimSpace(status)))
	return a.saveListing(ctx, l)
}

func (a *app) shellDelete(ctx context.Context, sc *bufio.Scanner, id string) error {
	l, err := a.editable(id)
	if err != nil {
		return err
	}
	answer, ok := prompt(a, sc, fmt.Sprintf("Delete %q permanently? [y/N]: ", l.Title))
	if !ok || !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.session.DeleteListing(ctx, l.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s (%s)\n", l.ID, l.Title)
	return nil
}
