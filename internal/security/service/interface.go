// Package service provides technical services for authorization decisions.
package service

import (
	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// RoleResolver defines the role extraction contract used by the authorization
// gates. Implementations must be pure reads and must never fail: any internal
// problem (malformed claims, missing configuration) maps to an absent role,
// which downstream checks treat as insufficient.
type RoleResolver interface {
	// Resolve extracts the caller's role claim from the session. Returns the
	// role string and true when a non-empty role was found, or ("", false)
	// when the session carries no usable role claim.
	Resolve(session *identityDomain.Session) (string, bool)
}
