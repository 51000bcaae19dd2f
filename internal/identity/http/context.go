// Package http provides HTTP middleware and utilities for session handling.
package http

import (
	"context"

	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// sessionKey is a context key type for storing the resolved session.
type sessionKey struct{}

// WithSession stores the resolved session in the context.
// This is typically called by the session middleware after resolving the caller.
func WithSession(ctx context.Context, session *identityDomain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession retrieves the resolved session from the context.
// Returns (session, true) if a session is present, or (nil, false) if no
// session was set. Handlers running behind the session middleware can rely
// on a session always being present, anonymous or not.
func GetSession(ctx context.Context) (*identityDomain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*identityDomain.Session)
	return session, ok
}
