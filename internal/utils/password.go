package utils

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential means a stored hash could not be interpreted.
var ErrCorruptCredential = errors.New("corrupt credential")

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash with a plain password. A mismatch is
// reported as (false, nil); a hash bcrypt cannot parse yields
// ErrCorruptCredential.
func VerifyPassword(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrCorruptCredential, err)
	}
}

var (
	dummyMu     sync.Mutex
	dummyHashes = map[int]string{}
)

// DummyHash returns a fixed bcrypt hash at the given cost. Login compares
// against it when the account does not exist, so an unknown email costs the
// same bcrypt work as a wrong password. Hashes are built once per cost.
func DummyHash(cost int) string {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	dummyMu.Lock()
	defer dummyMu.Unlock()
	if h, ok := dummyHashes[cost]; ok {
		return h
	}
	h, err := HashPassword("trendaura-dummy-password", cost)
	if err != nil {
		return ""
	}
	dummyHashes[cost] = h
	return h
}
