package domain

import (
	"github.com/clientguard/clientguard/internal/errors"
)

// Session errors.
var (
	// ErrSessionNotFound indicates a session with the specified ID was not found or has expired.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")
)
