// Package http provides the authorization gates and reporting handlers for
// the protected client area.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	identityHTTP "github.com/clientguard/clientguard/internal/identity/http"
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
	securityService "github.com/clientguard/clientguard/internal/security/service"
	securityUseCase "github.com/clientguard/clientguard/internal/security/usecase"
)

// Recorder writes security events for gate decisions and enforces the
// admin-only check shared by every protected operation.
//
// Audit writes are fail-open on purpose: a broken audit store must never take
// the gate down, so write failures are logged and the decision stands. The
// write always happens before the response for that decision is produced.
type Recorder struct {
	eventUseCase securityUseCase.SecurityEventUseCase
	roleResolver securityService.RoleResolver
	logger       *slog.Logger
}

// NewRecorder creates a new Recorder with the provided dependencies.
func NewRecorder(
	eventUseCase securityUseCase.SecurityEventUseCase,
	roleResolver securityService.RoleResolver,
	logger *slog.Logger,
) *Recorder {
	return &Recorder{
		eventUseCase: eventUseCase,
		roleResolver: roleResolver,
		logger:       logger,
	}
}

// Record writes one security event for the current request. The caller's
// identity, role, path, method, and source IP are derived from the request
// context. Failures are logged and swallowed.
func (r *Recorder) Record(c *gin.Context, action string, allowed bool, detail string) {
	input := &securityUseCase.RecordEventInput{
		RequestID: requestid.Get(c),
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
		IP:        c.ClientIP(),
		Action:    action,
		Allowed:   allowed,
		Detail:    detail,
	}

	if session, ok := identityHTTP.GetSession(c.Request.Context()); ok && session.Authenticated {
		input.UserID = session.UserID
		role, _ := r.roleResolver.Resolve(session)
		input.Role = role
	}

	if err := r.eventUseCase.Record(c.Request.Context(), input); err != nil {
		r.logger.Error("failed to record security event",
			slog.String("action", action),
			slog.Bool("allowed", allowed),
			slog.String("error", err.Error()))
	}
}

// RequireAdmin checks that the caller's resolved role is exactly "Admin".
// Role comparison is case-sensitive and resolution failures count as no role,
// so the check fails closed. On failure it writes a forbidden_role event with
// the resolved role in the detail, responds 403, and returns false; the
// handler must return without touching any data. On success nothing is
// written here, the operation-specific event follows in the handler.
func (r *Recorder) RequireAdmin(c *gin.Context) bool {
	var role string
	if session, ok := identityHTTP.GetSession(c.Request.Context()); ok {
		role, _ = r.roleResolver.Resolve(session)
	}

	if role != securityDomain.RoleAdmin {
		r.Record(c, securityDomain.ActionForbiddenRole, false, "role="+role)
		c.JSON(http.StatusForbidden, gin.H{"detail": "Insufficient permissions."})
		c.Abort()
		return false
	}

	return true
}
