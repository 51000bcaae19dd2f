package domain

import (
	"github.com/clientguard/clientguard/internal/errors"
)

var (
	// ErrClientNotFound indicates the referenced client record does not exist.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrClientAlreadyExists indicates a unique field (email or document ID)
	// collides with an existing record.
	ErrClientAlreadyExists = errors.Wrap(errors.ErrConflict, "client already exists")
)
