package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"unwind/marketplace"
)

func main() {
	_ = godotenv.Load()

	var (
		dbPath string
		clean  bool
		owner  string
	)
	cmd := &cobra.Command{
		Use:          "import_listings <file.json>",
		Short:        "Bulk load plots from a JSON array into the local data file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clean {
				cleanup(dbPath)
			}
			_, err := run(cmd.Context(), dbPath, args[0], owner)
			return err
		},
	}
	dbDefault := os.Getenv("UNWIND_DB")
	if dbDefault == "" {
		dbDefault = "unwind.db"
	}
	cmd.Flags().StringVar(&dbPath, "db", dbDefault, "path to the local data file (env UNWIND_DB)")
	cmd.Flags().BoolVar(&clean, "clean", false, "remove the existing data file before importing")
	cmd.Flags().StringVar(&owner, "owner", "owner", "role whose identity owns listings without an ownerId")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cleanup removes the data file together with its WAL side files.
func cleanup(dbPath string) {
	fmt.Println("Cleaning up existing data files...")
	for _, file := range []string{dbPath, dbPath + "-shm", dbPath + "-wal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}
}

type summary struct {
	imported int
	failed   int
}

// run imports every entry of file on its own; a bad entry is reported and
// skipped. Only an unreadable file or store fails the whole run.
func run(ctx context.Context, dbPath, file, ownerRole string) (summary, error) {
	var sum summary
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return sum, fmt.Errorf("read %s: %w", file, err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return sum, fmt.Errorf("parse %s: %w", file, err)
	}
	owner := marketplace.DemoUser(marketplace.Role(strings.ToUpper(ownerRole)))

	mgr, err := marketplace.Open(dbPath)
	if err != nil {
		return sum, fmt.Errorf("open %s: %w", dbPath, err)
	}
	defer mgr.Close()

	val := marketplace.NewValidator()
	fmt.Printf("Importing %d plots from %s...\n", len(entries), file)

	seen := map[string]bool{}
	for i, entry := range entries {
		l, err := marketplace.ParseListing(entry)
		if err != nil {
			fmt.Printf("Entry %d: ERROR - %v\n", i+1, err)
			sum.failed++
			continue
		}
		l = marketplace.PrepareListing(l, owner)
		fmt.Printf("Importing: %s (%s)... ", l.Title, l.ID)
		if seen[l.ID] {
			fmt.Printf("ERROR - duplicate id %s in file\n", l.ID)
			sum.failed++
			continue
		}
		if err := val.Listing(l); err != nil {
			fmt.Printf("ERROR - %v\n", err)
			sum.failed++
			continue
		}
		if _, err := mgr.Listings.Upsert(ctx, l); err != nil {
			fmt.Printf("ERROR - %v\n", err)
			sum.failed++
			continue
		}
		seen[l.ID] = true
		fmt.Println("SUCCESS")
		sum.imported++
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d plots\n", sum.imported)
	fmt.Printf("Errors: %d\n", sum.failed)

	if sum.imported == 0 {
		return sum, nil
	}
	all, err := mgr.Listings.List(ctx)
	if err != nil {
		return sum, fmt.Errorf("list plots: %w", err)
	}
	fmt.Println("\nCatalog:")
	fmt.Printf("%-10s %-40s %-25s %8s\n", "ID", "Title", "Location", "Price")
	fmt.Println(strings.Repeat("-", 86))
	for _, l := range all {
		fmt.Printf("%-10s %-40s %-25s %8d\n", truncateString(l.ID, 10), truncateString(l.Title, 40), truncateString(l.Location, 25), l.PricePerNight)
	}
	return sum, nil
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
