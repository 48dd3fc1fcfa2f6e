package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"unwind/marketplace"
)

// app carries everything a command needs; it is built once per invocation.
type app struct {
	dbPath string
	role   string
	asJSON bool

	mgr     *marketplace.Manager
	session *marketplace.Session
	val     *marketplace.Validator
	out     io.Writer
}

var errForbidden = errors.New("not permitted for this role")

// run executes one invocation against in and out and releases the store
// whether or not the command succeeded.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	a := &app{out: out, val: marketplace.NewValidator()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "unwind",
		Short:         "Browse and manage UnWind RV plots from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dbPath, "db", envOr("UNWIND_DB", defaultDBFile), "path to the local data file (env UNWIND_DB)")
	pf.StringVar(&a.role, "role", envOr("UNWIND_ROLE", "traveller"), "traveller, owner or admin (env UNWIND_ROLE)")
	pf.BoolVar(&a.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		a.listingsCmd(),
		a.listingCmd(),
		a.savedCmd(),
		a.tripsCmd(),
		a.configCmd(),
		a.infoCmd(),
		a.dashboardCmd(),
		a.resetCmd(),
		a.shellCmd(),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	role, err := parseRole(a.role)
	if err != nil {
		return err
	}
	mgr, err := marketplace.Open(a.dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.dbPath, err)
	}
	a.mgr = mgr
	a.session = marketplace.NewSession(mgr, marketplace.WithLogger(log.New(os.Stderr, "unwind: ", 0)))
	a.session.SignIn(role)
	if err := a.session.Load(ctx); err != nil {
		return fmt.Errorf("%w (run the command again to retry)", err)
	}
	return nil
}

func (a *app) close() error {
	if a.mgr == nil {
		return nil
	}
	err := a.mgr.Close()
	a.mgr = nil
	return err
}

func parseRole(s string) (marketplace.Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(marketplace.RoleTraveller):
		return marketplace.RoleTraveller, nil
	case string(marketplace.RoleOwner):
		return marketplace.RoleOwner, nil
	case string(marketplace.RoleAdmin):
		return marketplace.RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q (want traveller, owner or admin)", s)
}

func (a *app) require(roles ...marketplace.Role) error {
	u := a.session.User()
	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", errForbidden, strings.ToLower(string(u.Role)))
}

// canEdit reports whether the signed-in user may change l.
func (a *app) canEdit(l marketplace.Listing) error {
	u := a.session.User()
	switch {
	case u.Role == marketplace.RoleAdmin:
		return nil
	case u.Role == marketplace.RoleOwner && l.OwnerID == u.ID:
		return nil
	}
	return fmt.Errorf("%w: listing %s belongs to %s", errForbidden, l.ID, l.OwnerName)
}

// ------------------ Listings ------------------

func (a *app) listingsCmd() *cobra.Command {
	var opts marketplace.ViewOptions
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "List plots visible to the current role",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			listings, err := a.session.Listings(opts)
			if err != nil {
				return err
			}
			return a.printListings(listings)
		},
	}
	cmd.Flags().BoolVar(&opts.SavedOnly, "saved", false, "only bookmarked plots (travellers)")
	cmd.Flags().StringVarP(&opts.Query, "search", "s", "", "filter by title or location")
	return cmd
}

func (a *app) listingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Show, add, edit, share or delete a single plot",
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one plot in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := a.session.Listing(args[0])
			if err != nil {
				return err
			}
			return a.printListing(l)
		},
	}

	share := &cobra.Command{
		Use:   "share <id>",
		Short: "Print the share message for a plot",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := a.session.Listing(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, marketplace.ShareText(l))
			return nil
		},
	}

	addForm := &listingForm{}
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a plot owned by the signed-in owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.require(marketplace.RoleOwner, marketplace.RoleAdmin); err != nil {
				return err
			}
			draft := addForm.apply(cmd, marketplace.NewListingDraft())
			return a.saveListing(cmd.Context(), marketplace.PrepareListing(draft, a.session.User()))
		},
	}
	addForm.bind(add)

	editForm := &listingForm{}
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing plot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.session.Listing(args[0])
			if err != nil {
				return err
			}
			if err := a.canEdit(l); err != nil {
				return err
			}
			l = editForm.apply(cmd, l)
			return a.saveListing(cmd.Context(), marketplace.PrepareListing(l, a.session.User()))
		},
	}
	editForm.bind(edit)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a plot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.session.Listing(args[0])
			if errors.Is(err, marketplace.ErrListingNotFound) {
				fmt.Fprintf(a.out, "Nothing to delete: %s\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			if err := a.canEdit(l); err != nil {
				return err
			}
			if err := a.session.DeleteListing(cmd.Context(), l.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s (%s)\n", l.ID, l.Title)
			return nil
		},
	}

	cmd.AddCommand(show, share, add, edit, del)
	return cmd
}

func (a *app) saveListing(ctx context.Context, l marketplace.Listing) error {
	if err := a.val.Listing(l); err != nil {
		return err
	}
	saved, err := a.session.SaveListing(ctx, l)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s (%s)\n", saved.ID, saved.Title)
	return nil
}

// ------------------ Bookmarks ------------------

func (a *app) savedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "List saved plots",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			listings, err := a.session.Listings(marketplace.ViewOptions{SavedOnly: true})
			if err != nil {
				return err
			}
			return a.printListings(listings)
		},
	}
	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Save or unsave a plot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.toggleSaved(cmd.Context(), args[0])
		},
	}
	cmd.AddCommand(toggle)
	return cmd
}

func (a *app) toggleSaved(ctx context.Context, id string) error {
	saved, err := a.session.ToggleSaved(ctx, id)
	if err != nil {
		return err
	}
	state := "Removed from"
	for _, s := range saved {
		if s == id {
			state = "Added to"
		}
	}
	fmt.Fprintf(a.out, "%s saved plots: %s (%d saved)\n", state, id, len(saved))
	return nil
}

// ------------------ Trips ------------------

func (a *app) tripsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trips",
		Short: "Show trip history",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			trips, err := a.session.Trips()
			if err != nil {
				return err
			}
			return a.printTrips(trips)
		},
	}
}

// ------------------ Site configuration ------------------

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the site configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := a.session.Config()
			if err != nil {
				return err
			}
			return a.printConfig(cfg)
		},
	}

	form := &configForm{}
	set := &cobra.Command{
		Use:   "set",
		Short: "Update branding and content (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.require(marketplace.RoleAdmin); err != nil {
				return err
			}
			cfg, err := a.session.Config()
			if err != nil {
				return err
			}
			cfg = form.apply(cmd, cfg)
			if err := a.val.Config(cfg); err != nil {
				return err
			}
			if _, err := a.session.UpdateConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Settings updated successfully!")
			return nil
		},
	}
	form.bind(set)
	cmd.AddCommand(set)
	return cmd
}

var infoPages = []string{"privacy", "safety", "support", "about", "contact"}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "info <" + strings.Join(infoPages, "|") + ">",
		Short:     "Show one of the site's information pages",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: infoPages,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := a.session.Config()
			if err != nil {
				return err
			}
			title, text := infoPage(cfg, args[0])
			fmt.Fprintf(a.out, "%s\n\n%s\n", title, text)
			return nil
		},
	}
}

func infoPage(cfg marketplace.SiteConfig, page string) (string, string) {
	switch page {
	case "privacy":
		return "Privacy Policy", cfg.PrivacyContent
	case "safety":
		return "Safety Standards", cfg.SafetyContent
	case "support":
		return "Support Center", cfg.SupportContent
	case "about":
		return "About " + cfg.SiteName, cfg.AboutContent
	case "contact":
		return "Contact Us", cfg.ContactContent
	}
	return page, ""
}

// ------------------ Admin ------------------

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show listing counters for the current role",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			d, err := a.session.Dashboard()
			if err != nil {
				return err
			}
			if a.asJSON {
				return printJSON(a.out, d)
			}
			fmt.Fprintf(a.out, "Plots: %d  Available: %d  Saved: %d\n", d.Listings, d.Available, d.Saved)
			return nil
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default catalog, settings and an empty saved list (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.require(marketplace.RoleAdmin); err != nil {
				return err
			}
			if err := a.mgr.ResetAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Local data reset to defaults.")
			return nil
		},
	}
}
