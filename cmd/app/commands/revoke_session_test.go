package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRevokeSession(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &mockSessionUseCase{}
		mockUseCase.On("Revoke", ctx, "session-1").Return(nil).Once()

		var out bytes.Buffer
		err := RunRevokeSession(ctx, mockUseCase, logger, "session-1", IOTuple{Writer: &out})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "session-1")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("missing-session-id", func(t *testing.T) {
		mockUseCase := &mockSessionUseCase{}

		var out bytes.Buffer
		err := RunRevokeSession(ctx, mockUseCase, logger, "", IOTuple{Writer: &out})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session id is required")
		mockUseCase.AssertNotCalled(t, "Revoke")
	})

	t.Run("store-error", func(t *testing.T) {
		mockUseCase := &mockSessionUseCase{}
		mockUseCase.On("Revoke", ctx, "session-1").Return(errors.New("connection refused")).Once()

		var out bytes.Buffer
		err := RunRevokeSession(ctx, mockUseCase, logger, "session-1", IOTuple{Writer: &out})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to revoke session")
		mockUseCase.AssertExpectations(t)
	})
}
