// Package domain defines session models for the external identity-provider integration.
//
// Sessions are minted outside this service by the identity-provider login flow and
// consumed here as an opaque authenticated context. The claims payload mirrors the
// decoded id-token and is never verified cryptographically by this service.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// LinkedIdentity represents a secondary identity-provider record attached to a user
// (e.g., a social login). ExtraData carries provider-specific payloads, including a
// possible copy of the id-token claims under the "id_token_payload" key.
type LinkedIdentity struct {
	Provider  string         `json:"provider"`
	ExtraData map[string]any `json:"extra_data"`
}

// Session represents one authenticated (or anonymous) caller context.
// Claims holds the decoded id-token payload as stored by the login flow.
type Session struct {
	ID               string           // Opaque session identifier (cookie value)
	UserID           *uuid.UUID       // Acting user; nil for anonymous sessions
	Authenticated    bool             // Whether the session carries a verified login
	Claims           map[string]any   // Decoded id-token payload (may be nil)
	LinkedIdentities []LinkedIdentity // Secondary identity records (may be nil)
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// Expired reports whether the session's lifetime has elapsed at the given instant.
// Sessions without an expiry never expire.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// Anonymous returns an unauthenticated session context. Used whenever no valid
// session can be resolved, so downstream authorization fails closed.
func Anonymous() *Session {
	return &Session{Authenticated: false}
}

// IssueSessionInput contains the parameters for minting a new session.
type IssueSessionInput struct {
	UserID           uuid.UUID
	Claims           map[string]any
	LinkedIdentities []LinkedIdentity
	TTL              time.Duration
}
