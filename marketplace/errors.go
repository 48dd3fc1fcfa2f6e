package marketplace

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptPersistedState marks a stored value that does not decode as
	// the expected shape.
	ErrCorruptPersistedState = errors.New("corrupt persisted state")
	// ErrInitializationFailed marks a failed initial load. The session stays
	// in Loading and Load may be retried.
	ErrInitializationFailed = errors.New("initialization failed")
	// ErrNotReady is returned by session views before a successful Load.
	ErrNotReady = errors.New("session not ready")
	// ErrConflict is returned when a collection write keeps losing to
	// concurrent writers after retrying.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrListingNotFound is returned by single-listing lookups.
	ErrListingNotFound = errors.New("listing not found")
	// ErrInvalidListing wraps validation failures at the editor boundary.
	ErrInvalidListing = errors.New("invalid listing")
	// ErrInvalidValue is returned when a mutation would store a value the
	// collection's own decoder rejects. Nothing is written.
	ErrInvalidValue = errors.New("refusing to store undecodable value")
	// ErrBlankID is returned by session mutations given an empty listing id.
	ErrBlankID = errors.New("blank listing id")
	// ErrInvalidConfig wraps validation failures in the configuration editor.
	ErrInvalidConfig = errors.New("invalid site configuration")
)

// CorruptStateError names the storage key whose value could not be decoded.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCorruptPersistedState, e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

func (e *CorruptStateError) Is(target error) bool { return target == ErrCorruptPersistedState }

// InitError reports which collection failed during Load.
type InitError struct {
	Collection Collection
	Err        error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: load %s: %v", ErrInitializationFailed, e.Collection, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

func (e *InitError) Is(target error) bool { return target == ErrInitializationFailed }
