package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
	identityUseCase "github.com/clientguard/clientguard/internal/identity/usecase"
)

// RunCreateSession mints an authenticated session directly in the session store,
// bypassing the identity provider. Useful for bootstrapping an admin session and
// for local development. Outputs the session ID and expiry in text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateSession(
	ctx context.Context,
	sessionUseCase identityUseCase.SessionUseCase,
	logger *slog.Logger,
	claimNamespace string,
	userIDStr string,
	role string,
	ttl time.Duration,
	format string,
	ioTuple IOTuple,
) error {
	userID := uuid.Must(uuid.NewV7())
	if userIDStr != "" {
		parsed, err := uuid.Parse(userIDStr)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		userID = parsed
	}

	claims := map[string]any{}
	if role != "" {
		claims[claimNamespace+"/role"] = role
	}

	session, err := sessionUseCase.Issue(ctx, &identityDomain.IssueSessionInput{
		UserID: userID,
		Claims: claims,
		TTL:    ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if format == "json" {
		outputSessionJSON(session, role, ioTuple.Writer)
	} else {
		outputSessionText(session, role, ioTuple.Writer)
	}

	logger.Info("session created successfully",
		slog.String("session_id", session.ID),
		slog.String("user_id", userID.String()),
		slog.String("role", role),
	)

	return nil
}

func outputSessionText(session *identityDomain.Session, role string, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "Session ID: %s\n", session.ID)
	_, _ = fmt.Fprintf(writer, "User ID:    %s\n", session.UserID)
	_, _ = fmt.Fprintf(writer, "Role:       %s\n", role)
	_, _ = fmt.Fprintf(writer, "Expires At: %s\n", session.ExpiresAt.Format(time.RFC3339))
}

func outputSessionJSON(session *identityDomain.Session, role string, writer io.Writer) {
	result := map[string]string{
		"session_id": session.ID,
		"user_id":    session.UserID.String(),
		"role":       role,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
