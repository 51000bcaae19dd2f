// Package usecase implements business logic orchestration for access auditing.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clientguard/clientguard/internal/errors"
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
)

// securityEventUseCase implements SecurityEventUseCase.
type securityEventUseCase struct {
	eventRepo SecurityEventRepository
}

// Record appends one security event to the audit trail. Generates a unique
// UUIDv7 identifier and UTC timestamp, so insertion order matches ID order.
func (s *securityEventUseCase) Record(ctx context.Context, input *RecordEventInput) error {
	event := &securityDomain.SecurityEvent{
		ID:        uuid.Must(uuid.NewV7()),
		RequestID: input.RequestID,
		UserID:    input.UserID,
		Role:      input.Role,
		Path:      input.Path,
		Method:    input.Method,
		IP:        input.IP,
		Action:    input.Action,
		Allowed:   input.Allowed,
		Detail:    input.Detail,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to record security event")
	}

	return nil
}

// Report aggregates the audit trail into overall and per-action counts.
func (s *securityEventUseCase) Report(ctx context.Context) (*securityDomain.SecurityReport, error) {
	report, err := s.eventRepo.Aggregate(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build security report")
	}

	return report, nil
}

// NewSecurityEventUseCase creates a new SecurityEventUseCase with the provided dependencies.
func NewSecurityEventUseCase(eventRepo SecurityEventRepository) SecurityEventUseCase {
	return &securityEventUseCase{
		eventRepo: eventRepo,
	}
}
