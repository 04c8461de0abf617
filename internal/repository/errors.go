// Package repository defines error values shared by the MySQL repositories.
// These sentinels let higher layers distinguish failure scenarios with
// errors.Is without inspecting driver errors.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an account with the same email is
// already registered. The unique index on users.email is the authority.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateProfile signals a second profile insert for one account.
// It indicates a logic error; registration creates exactly one profile.
var ErrDuplicateProfile = errors.New("profile already exists")

// ErrStoreUnavailable wraps any other persistence failure. Handlers map it
// to a generic 500.
var ErrStoreUnavailable = errors.New("store unavailable")

// storeErr leaves the sentinels above intact and classifies anything else
// (begin/commit failures, driver errors) as ErrStoreUnavailable.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEmailExists),
		errors.Is(err, ErrDuplicateProfile), errors.Is(err, ErrStoreUnavailable):
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
