package service

import (
	"time"

	"github.com/google/uuid"
)

// PasswordHasher hashes and verifies raw passwords. Implementations must be
// one-way and salted.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) error
}

// IDGenerator returns a fresh opaque record id.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

func defaultIDGenerator() string {
	return uuid.NewString()
}

// defaultClock matches the microsecond resolution of TIMESTAMPTZ so a
// freshly created record reads back unchanged.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
