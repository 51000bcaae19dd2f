package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityHTTP "github.com/clientguard/clientguard/internal/identity/http"
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
)

// AccessGate intercepts every request to the protected client area and makes
// exactly one admission decision per request.
//
// MUST be used after SessionMiddleware. Unauthenticated callers are blocked
// with 401 after an unauth_access event is written; authenticated callers
// produce a clients_hit event and proceed to the operation handler. In both
// branches the audit write happens before the response.
//
// The gate only decides authentication. The stricter admin-role check runs
// inside each operation via Recorder.RequireAdmin.
func AccessGate(recorder *Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := identityHTTP.GetSession(c.Request.Context())
		if !ok || !session.Authenticated {
			recorder.Record(c, securityDomain.ActionUnauthAccess, false, "not authenticated")
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required."})
			c.Abort()
			return
		}

		recorder.Record(c, securityDomain.ActionClientsHit, true, "authenticated hit")
		c.Next()
	}
}
