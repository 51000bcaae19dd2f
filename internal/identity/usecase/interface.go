// Package usecase defines business logic interfaces for session management.
package usecase

import (
	"context"

	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// SessionRepository defines persistence operations for sessions.
// Implementations must support transaction-aware operations via context propagation.
type SessionRepository interface {
	// Create stores a new session in the repository.
	Create(ctx context.Context, session *identityDomain.Session) error

	// Get retrieves a session by ID. Returns ErrSessionNotFound if not found.
	Get(ctx context.Context, sessionID string) (*identityDomain.Session, error)

	// Delete removes a session by ID. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// SessionUseCase defines business logic operations for session lifecycle.
type SessionUseCase interface {
	// Issue mints a new authenticated session for a user with the given claims
	// payload and TTL, and persists it. Returns the stored session including
	// its generated opaque ID.
	Issue(ctx context.Context, input *identityDomain.IssueSessionInput) (*identityDomain.Session, error)

	// Resolve looks up a session by ID. It never returns an error: any failure
	// (missing, expired, storage error) yields an anonymous session so that
	// downstream authorization fails closed.
	Resolve(ctx context.Context, sessionID string) *identityDomain.Session

	// Revoke deletes a session by ID.
	Revoke(ctx context.Context, sessionID string) error
}
