package store

import (
	"errors"
	"strings"
)

// Canonical, backend-neutral errors callers can match on.
var (
	// ErrNotFound is returned when a key is absent. Absence is a normal
	// condition for callers, not a failure.
	ErrNotFound = errors.New("store: key not found")
)

// authErrorMarkers are the server replies Redis uses for credential
// problems, across versions (NOAUTH pre-6, WRONGPASS with ACLs).
var authErrorMarkers = []string{"NOAUTH", "WRONGPASS", "invalid password", "invalid username-password"}

// IsAuthError reports whether err is an authentication failure, so it can
// be reported distinctly from generic connection errors.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range authErrorMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is the missing-key condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
