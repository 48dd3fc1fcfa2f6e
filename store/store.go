// Package store is the durable key-value layer under the marketplace
// collections. Each logical collection lives under its own key and is
// rewritten as a unit; there are no transactions across keys.
package store

import (
	"context"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

var (
	// ErrNotFound is returned by Get when nothing is persisted under the key.
	ErrNotFound = errors.New("store: key not found")
	// ErrConflict is returned by Put when the expected version does not match.
	ErrConflict = errors.New("store: version conflict")
	// ErrCorrupt is returned by Get when the stored bytes fail their checksum.
	ErrCorrupt = errors.New("store: corrupt record")
)

// AnyVersion makes Put an unconditional overwrite.
const AnyVersion int64 = -1

// Record is a persisted value plus the version it was written at.
// Versions start at 1 and grow by one on every Put.
type Record struct {
	Value   []byte
	Version int64
}

// Store is the contract every backend satisfies.
//
// Put with expected == 0 requires the key to be absent; with expected > 0 it
// requires the current version to match. Either mismatch yields ErrConflict.
type Store interface {
	Get(ctx context.Context, key string) (Record, error)
	Put(ctx context.Context, key string, value []byte, expected int64) (int64, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

func checksum(value []byte) string {
	sum := blake2b.Sum256(value)
	return hex.EncodeToString(sum[:])
}

func versionMatches(current, expected int64) bool {
	return expected == AnyVersion || current == expected
}
