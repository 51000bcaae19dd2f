package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// mockSessionUseCase is a mock implementation of SessionUseCase for testing.
type mockSessionUseCase struct {
	mock.Mock
}

func (m *mockSessionUseCase) Issue(
	ctx context.Context,
	input *identityDomain.IssueSessionInput,
) (*identityDomain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Session), args.Error(1)
}

func (m *mockSessionUseCase) Resolve(ctx context.Context, sessionID string) *identityDomain.Session {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(*identityDomain.Session)
}

func (m *mockSessionUseCase) Revoke(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func TestRunCreateSession(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	namespace := "https://clientguard.io/claims"

	t.Run("generated-user-text", func(t *testing.T) {
		mockUseCase := &mockSessionUseCase{}

		userID := uuid.Must(uuid.NewV7())
		session := &identityDomain.Session{
			ID:            uuid.NewString(),
			UserID:        &userID,
			Authenticated: true,
			ExpiresAt:     time.Now().Add(time.Hour).UTC(),
		}

		var captured *identityDomain.IssueSessionInput
		mockUseCase.On("Issue", ctx, mock.AnythingOfType("*domain.IssueSessionInput")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*identityDomain.IssueSessionInput)
			}).
			Return(session, nil)

		var out bytes.Buffer
		err := RunCreateSession(
			ctx, mockUseCase, logger, namespace, "", "Admin", time.Hour, "text",
			IOTuple{Writer: &out},
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), session.ID)
		require.Contains(t, out.String(), "Admin")

		require.NotNil(t, captured)
		require.NotEqual(t, uuid.Nil, captured.UserID)
		require.Equal(t, "Admin", captured.Claims[namespace+"/role"])
		require.Equal(t, time.Hour, captured.TTL)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("explicit-user-json", func(t *testing.T) {
		mockUseCase := &mockSessionUseCase{}

		userID := uuid.Must(uuid.NewV7())
		session := &identityDomain.Session{
			ID:            uuid.NewString(),
			UserID:        &userID,
			Authenticated: true,
			ExpiresAt:     time.Now().Add(time.Hour).UTC(),
		}

		var captured *identityDomain.IssueSessionInput
		mockUseCase.On("Issue", ctx, mock.AnythingOfType("*domain.IssueSessionInput")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*identityDomain.IssueSessionInput)
			}).
			Return(session, nil)

		var out bytes.Buffer
		err := RunCreateSession(
			ctx, mockUseCase, logger, namespace, userID.String(), "Externo", time.Hour, "json",
			IOTuple{Writer: &out},
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), `"session_id"`)
		require.Contains(t, out.String(), session.ID)

		require.NotNil(t, captured)
		require.Equal(t, userID, captured.UserID)
		require.Equal(t, "Externo", captured.Claims[namespace+"/role"])

		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-user-id", func(t *testing.T) {
		mockUseCase := &mockSessionUseCase{}

		var out bytes.Buffer
		err := RunCreateSession(
			ctx, mockUseCase, logger, namespace, "not-a-uuid", "Admin", time.Hour, "text",
			IOTuple{Writer: &out},
		)

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid user id")
		mockUseCase.AssertNotCalled(t, "Issue")
	})
}
