package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert or update violates a
	// uniqueness constraint (duplicate email, slug, or name).
	ErrConflict = errors.New("already exists")
)

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
// SQLite and Postgres word these differently, so this goes by message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
