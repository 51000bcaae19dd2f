// Package usecase implements business logic orchestration for session management.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clientguard/clientguard/internal/errors"
	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	sessionRepo SessionRepository
	logger      *slog.Logger
}

// Issue mints a new authenticated session with a random opaque ID and persists it.
func (s *sessionUseCase) Issue(
	ctx context.Context,
	input *identityDomain.IssueSessionInput,
) (*identityDomain.Session, error) {
	now := time.Now().UTC()
	userID := input.UserID

	session := &identityDomain.Session{
		ID:               uuid.NewString(),
		UserID:           &userID,
		Authenticated:    true,
		Claims:           input.Claims,
		LinkedIdentities: input.LinkedIdentities,
		CreatedAt:        now,
		ExpiresAt:        now.Add(input.TTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, "failed to create session")
	}

	return session, nil
}

// Resolve looks up a session by ID, returning an anonymous session on any failure.
// Expired sessions resolve to anonymous as well. Storage errors are logged but
// never propagated: authentication state must be decidable for every request.
func (s *sessionUseCase) Resolve(ctx context.Context, sessionID string) *identityDomain.Session {
	if sessionID == "" {
		return identityDomain.Anonymous()
	}

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("session lookup failed",
				slog.String("error", err.Error()))
		}
		return identityDomain.Anonymous()
	}

	if session.Expired(time.Now().UTC()) {
		return identityDomain.Anonymous()
	}

	return session
}

// Revoke deletes a session by ID.
func (s *sessionUseCase) Revoke(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(sessionRepo SessionRepository, logger *slog.Logger) SessionUseCase {
	return &sessionUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}
