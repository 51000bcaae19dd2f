package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
)

// mockSecurityEventRepository is a mock implementation of SecurityEventRepository for testing.
type mockSecurityEventRepository struct {
	mock.Mock
}

func (m *mockSecurityEventRepository) Create(
	ctx context.Context,
	event *securityDomain.SecurityEvent,
) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockSecurityEventRepository) Aggregate(
	ctx context.Context,
) (*securityDomain.SecurityReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*securityDomain.SecurityReport), args.Error(1)
}

func TestSecurityEventUseCase_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordDeniedEvent", func(t *testing.T) {
		mockRepo := &mockSecurityEventRepository{}

		var captured *securityDomain.SecurityEvent
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.SecurityEvent")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*securityDomain.SecurityEvent)
			}).
			Return(nil).
			Once()

		useCase := NewSecurityEventUseCase(mockRepo)

		err := useCase.Record(ctx, &RecordEventInput{
			RequestID: "req-1",
			Path:      "/clients/",
			Method:    "GET",
			IP:        "10.0.0.9",
			Action:    securityDomain.ActionUnauthAccess,
			Allowed:   false,
			Detail:    "not authenticated",
		})
		require.NoError(t, err)

		require.NotNil(t, captured)
		assert.NotEqual(t, uuid.Nil, captured.ID)
		assert.False(t, captured.CreatedAt.IsZero())
		assert.Nil(t, captured.UserID)
		assert.Empty(t, captured.Role)
		assert.Equal(t, securityDomain.ActionUnauthAccess, captured.Action)
		assert.False(t, captured.Allowed)
		assert.Equal(t, "not authenticated", captured.Detail)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_RecordAllowedEventWithUser", func(t *testing.T) {
		mockRepo := &mockSecurityEventRepository{}

		userID := uuid.Must(uuid.NewV7())
		var captured *securityDomain.SecurityEvent
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.SecurityEvent")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*securityDomain.SecurityEvent)
			}).
			Return(nil).
			Once()

		useCase := NewSecurityEventUseCase(mockRepo)

		err := useCase.Record(ctx, &RecordEventInput{
			UserID:  &userID,
			Role:    securityDomain.RoleAdmin,
			Path:    "/clients/",
			Method:  "GET",
			Action:  securityDomain.ActionClientsHit,
			Allowed: true,
			Detail:  "authenticated hit",
		})
		require.NoError(t, err)

		require.NotNil(t, captured.UserID)
		assert.Equal(t, userID, *captured.UserID)
		assert.True(t, captured.Allowed)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		mockRepo := &mockSecurityEventRepository{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.SecurityEvent")).
			Return(errors.New("disk full")).
			Once()

		useCase := NewSecurityEventUseCase(mockRepo)

		err := useCase.Record(ctx, &RecordEventInput{
			Action: securityDomain.ActionClientsHit,
		})
		assert.Error(t, err)

		mockRepo.AssertExpectations(t)
	})
}

func TestSecurityEventUseCase_Report(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mockSecurityEventRepository{}

		expected := &securityDomain.SecurityReport{
			TotalEvents: 10,
			Denied:      4,
			Allowed:     6,
			ByAction: []securityDomain.ActionBreakdown{
				{Action: securityDomain.ActionClientsHit, Total: 6, Allowed: 6},
				{Action: securityDomain.ActionUnauthAccess, Total: 4, Denied: 4},
			},
		}
		mockRepo.On("Aggregate", ctx).Return(expected, nil).Once()

		useCase := NewSecurityEventUseCase(mockRepo)

		report, err := useCase.Report(ctx)
		require.NoError(t, err)
		assert.Same(t, expected, report)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		mockRepo := &mockSecurityEventRepository{}
		mockRepo.On("Aggregate", ctx).Return(nil, errors.New("connection refused")).Once()

		useCase := NewSecurityEventUseCase(mockRepo)

		report, err := useCase.Report(ctx)
		assert.Error(t, err)
		assert.Nil(t, report)

		mockRepo.AssertExpectations(t)
	})
}
