package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	identityUseCase "github.com/clientguard/clientguard/internal/identity/usecase"
)

// SessionMiddleware resolves the caller's session and stores it in the request context.
//
// The session ID is read from the session cookie (name is configurable), with a
// fallback to a Bearer token in the Authorization header for non-browser callers.
//
// The middleware never rejects a request: a missing, expired, or unknown session
// resolves to an anonymous session, and downstream authorization middleware
// decides what anonymous callers may do. Every handler behind this middleware
// can rely on GetSession() returning a session.
func SessionMiddleware(
	sessionUseCase identityUseCase.SessionUseCase,
	cookieName string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := extractSessionID(c, cookieName)

		session := sessionUseCase.Resolve(c.Request.Context(), sessionID)

		if session.Authenticated {
			logger.Debug("session resolved",
				slog.String("session_id", session.ID))
		}

		ctx := WithSession(c.Request.Context(), session)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractSessionID reads the session ID from the configured cookie, falling
// back to a Bearer token in the Authorization header. Returns an empty string
// when the request carries no credentials.
func extractSessionID(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return authHeader[len(bearerPrefix):]
}
