// Package usecase defines business logic interfaces for access auditing.
package usecase

import (
	"context"

	"github.com/google/uuid"

	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
)

// SecurityEventRepository defines persistence operations for security events.
// Implementations must support transaction-aware operations via context propagation.
type SecurityEventRepository interface {
	// Create appends a new security event to the audit trail.
	Create(ctx context.Context, event *securityDomain.SecurityEvent) error

	// Aggregate computes overall and per-action allowed/denied counts across
	// the full audit trail. The per-action breakdown is ordered by action
	// name ascending.
	Aggregate(ctx context.Context) (*securityDomain.SecurityReport, error)
}

// RecordEventInput carries the request-derived fields of a security event.
// The event ID and timestamp are assigned by the use case.
type RecordEventInput struct {
	RequestID string
	UserID    *uuid.UUID
	Role      string
	Path      string
	Method    string
	IP        string
	Action    string
	Allowed   bool
	Detail    string
}

// SecurityEventUseCase defines business logic operations for the audit trail.
type SecurityEventUseCase interface {
	// Record appends one security event. Callers treat failures as
	// non-fatal: a broken audit store must never take the gate down with it,
	// so errors are surfaced for logging but requests proceed regardless.
	Record(ctx context.Context, input *RecordEventInput) error

	// Report aggregates the audit trail into a SecurityReport.
	Report(ctx context.Context) (*securityDomain.SecurityReport, error)
}
