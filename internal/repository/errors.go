package repository

import (
	"errors"
	"strings"
)

// ErrConflict marks a SQLite unique-constraint violation. Callers treat it as
// recoverable for the current unit of work instead of failing the process.
var ErrConflict = errors.New("unique constraint violated")

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
