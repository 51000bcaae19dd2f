package service

import (
	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// idTokenPayloadKey is where linked identity providers stash the raw token
// claims inside their extra data payload.
const idTokenPayloadKey = "id_token_payload"

// roleResolver implements RoleResolver against namespaced identity token claims.
//
// The role claim lives under "<namespace>/role" in the session's claims
// payload. When the primary payload carries no role, the resolver falls back
// to scanning the caller's linked identities, checking the same namespaced
// key inside each one's stored token payload and stopping at the first hit.
type roleResolver struct {
	claimKey string
}

// Resolve extracts the caller's role. It never fails: type mismatches and
// absent keys all resolve to ("", false), keeping role resolution fail-closed.
func (r *roleResolver) Resolve(session *identityDomain.Session) (string, bool) {
	if session == nil {
		return "", false
	}

	if role := stringClaim(session.Claims, r.claimKey); role != "" {
		return role, true
	}

	for _, linked := range session.LinkedIdentities {
		payload, ok := linked.ExtraData[idTokenPayloadKey].(map[string]any)
		if !ok {
			continue
		}
		if role := stringClaim(payload, r.claimKey); role != "" {
			return role, true
		}
	}

	return "", false
}

// stringClaim reads a string-typed claim from a claims payload, returning ""
// for absent or non-string values.
func stringClaim(claims map[string]any, key string) string {
	if claims == nil {
		return ""
	}
	role, _ := claims[key].(string)
	return role
}

// NewRoleResolver creates a RoleResolver for the given claim namespace.
// The namespace identifies the token claims owned by the identity provider
// integration, e.g. "https://clientguard.io/claims".
func NewRoleResolver(namespace string) RoleResolver {
	return &roleResolver{claimKey: namespace + "/role"}
}
