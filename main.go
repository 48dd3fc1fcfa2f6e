package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultDBFile = "unwind.db"

func main() {
	// A missing .env is normal; flags and the environment still apply.
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
