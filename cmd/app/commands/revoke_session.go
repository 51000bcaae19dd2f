package commands

import (
	"context"
	"fmt"
	"log/slog"

	identityUseCase "github.com/clientguard/clientguard/internal/identity/usecase"
)

// RunRevokeSession removes a session from the session store. Subsequent
// requests carrying the session ID resolve as anonymous.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeSession(
	ctx context.Context,
	sessionUseCase identityUseCase.SessionUseCase,
	logger *slog.Logger,
	sessionID string,
	ioTuple IOTuple,
) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	if err := sessionUseCase.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	_, _ = fmt.Fprintf(ioTuple.Writer, "Session %s revoked\n", sessionID)

	logger.Info("session revoked successfully",
		slog.String("session_id", sessionID),
	)

	return nil
}
