package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

func setupRateLimitRouter(rps float64, burst int, session *identityDomain.Session) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if session != nil {
			c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))
		}
		c.Next()
	})
	router.Use(RateLimitMiddleware(rps, burst, createTestLogger()))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	router := setupRateLimitRouter(100, 10, nil)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	router := setupRateLimitRouter(1, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second immediate request exceeds the burst of 1
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_PerUserIsolation(t *testing.T) {
	userA := uuid.Must(uuid.NewV7())
	userB := uuid.Must(uuid.NewV7())

	limiter := RateLimitMiddleware(1, 1, createTestLogger())

	router := gin.New()
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	serve := func(userID uuid.UUID) int {
		session := &identityDomain.Session{
			ID:            uuid.NewString(),
			UserID:        &userID,
			Authenticated: true,
			ExpiresAt:     time.Now().UTC().Add(time.Hour),
		}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req.WithContext(WithSession(req.Context(), session))
		limiter(c)
		if c.IsAborted() {
			return w.Code
		}
		return http.StatusOK
	}

	// Exhaust user A's budget
	assert.Equal(t, http.StatusOK, serve(userA))
	assert.Equal(t, http.StatusTooManyRequests, serve(userA))

	// User B is unaffected
	assert.Equal(t, http.StatusOK, serve(userB))
}

func TestCallerKey(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())

	t.Run("authenticated caller keyed by user id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		session := &identityDomain.Session{ID: "s", UserID: &userID, Authenticated: true}
		c.Request = req.WithContext(WithSession(req.Context(), session))

		assert.Equal(t, "user:"+userID.String(), callerKey(c))
	})

	t.Run("anonymous caller keyed by ip", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.1.2.3:52000"
		c.Request = req

		assert.Equal(t, "ip:10.1.2.3", callerKey(c))
	})
}
