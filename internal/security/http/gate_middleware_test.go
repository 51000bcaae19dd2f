package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
	identityHTTP "github.com/clientguard/clientguard/internal/identity/http"
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
	securityUseCase "github.com/clientguard/clientguard/internal/security/usecase"
)

// mockSecurityEventUseCase is a mock implementation of SecurityEventUseCase for testing.
type mockSecurityEventUseCase struct {
	mock.Mock
}

func (m *mockSecurityEventUseCase) Record(
	ctx context.Context,
	input *securityUseCase.RecordEventInput,
) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *mockSecurityEventUseCase) Report(
	ctx context.Context,
) (*securityDomain.SecurityReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*securityDomain.SecurityReport), args.Error(1)
}

// mockRoleResolver is a mock implementation of RoleResolver for testing.
type mockRoleResolver struct {
	mock.Mock
}

func (m *mockRoleResolver) Resolve(session *identityDomain.Session) (string, bool) {
	args := m.Called(session)
	return args.String(0), args.Bool(1)
}

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestLogger creates a test logger that discards output.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sessionInjector fakes the session middleware by storing a fixed session.
func sessionInjector(session *identityDomain.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session != nil {
			c.Request = c.Request.WithContext(
				identityHTTP.WithSession(c.Request.Context(), session))
		}
		c.Next()
	}
}

func adminSession() *identityDomain.Session {
	userID := uuid.Must(uuid.NewV7())
	return &identityDomain.Session{
		ID:            uuid.NewString(),
		UserID:        &userID,
		Authenticated: true,
	}
}

func TestAccessGate_UnauthenticatedBlocked(t *testing.T) {
	mockEvents := &mockSecurityEventUseCase{}
	mockRoles := &mockRoleResolver{}

	var captured *securityUseCase.RecordEventInput
	mockEvents.On("Record", mock.Anything, mock.AnythingOfType("*usecase.RecordEventInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*securityUseCase.RecordEventInput)
		}).
		Return(nil).
		Once()

	recorder := NewRecorder(mockEvents, mockRoles, createTestLogger())

	handlerCalled := false
	router := gin.New()
	group := router.Group("/clients")
	group.Use(AccessGate(recorder))
	group.GET("", func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerCalled)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Authentication required.", body["detail"])

	// Exactly one denied unauth_access event with no user reference
	require.NotNil(t, captured)
	assert.Equal(t, securityDomain.ActionUnauthAccess, captured.Action)
	assert.False(t, captured.Allowed)
	assert.Equal(t, "not authenticated", captured.Detail)
	assert.Nil(t, captured.UserID)
	assert.Empty(t, captured.Role)
	assert.Equal(t, "/clients", captured.Path)
	assert.Equal(t, http.MethodGet, captured.Method)

	mockEvents.AssertExpectations(t)
	mockRoles.AssertNotCalled(t, "Resolve")
}

func TestAccessGate_AuthenticatedAdmitted(t *testing.T) {
	mockEvents := &mockSecurityEventUseCase{}
	mockRoles := &mockRoleResolver{}

	session := adminSession()
	mockRoles.On("Resolve", session).Return(securityDomain.RoleExterno, true).Once()

	var captured *securityUseCase.RecordEventInput
	mockEvents.On("Record", mock.Anything, mock.AnythingOfType("*usecase.RecordEventInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*securityUseCase.RecordEventInput)
		}).
		Return(nil).
		Once()

	recorder := NewRecorder(mockEvents, mockRoles, createTestLogger())

	eventWrittenBeforeHandler := false
	router := gin.New()
	group := router.Group("/clients")
	group.Use(sessionInjector(session))
	group.Use(AccessGate(recorder))
	group.GET("", func(c *gin.Context) {
		eventWrittenBeforeHandler = captured != nil
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, eventWrittenBeforeHandler, "audit write must precede the handler")

	require.NotNil(t, captured)
	assert.Equal(t, securityDomain.ActionClientsHit, captured.Action)
	assert.True(t, captured.Allowed)
	assert.Equal(t, "authenticated hit", captured.Detail)
	assert.Equal(t, session.UserID, captured.UserID)
	assert.Equal(t, securityDomain.RoleExterno, captured.Role)

	mockEvents.AssertExpectations(t)
	mockRoles.AssertExpectations(t)
}

func TestAccessGate_AuditFailureDoesNotBlockDecision(t *testing.T) {
	mockEvents := &mockSecurityEventUseCase{}
	mockRoles := &mockRoleResolver{}

	session := adminSession()
	mockRoles.On("Resolve", session).Return("", false).Once()
	mockEvents.On("Record", mock.Anything, mock.Anything).
		Return(assert.AnError).
		Once()

	recorder := NewRecorder(mockEvents, mockRoles, createTestLogger())

	router := gin.New()
	group := router.Group("/clients")
	group.Use(sessionInjector(session))
	group.Use(AccessGate(recorder))
	group.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The admission decision stands even when the audit store is down
	assert.Equal(t, http.StatusOK, w.Code)
	mockEvents.AssertExpectations(t)
}
