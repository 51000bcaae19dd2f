// Package domain defines the core entities for access auditing.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecurityEvent records one access decision made by the authorization gates.
// Events are append-only: they are written by the gates, read by the reporting
// path, and never mutated or deleted by normal operation.
//
// UserID is a weak reference to the acting user. It is copied at write time
// and carries no ownership link, so removing a user later leaves the audit
// trail intact with a dangling (null) reference.
type SecurityEvent struct {
	ID        uuid.UUID
	RequestID string
	UserID    *uuid.UUID
	Role      string
	Path      string
	Method    string
	IP        string
	Action    string
	Allowed   bool
	Detail    string
	CreatedAt time.Time
}

// Denied reports whether the event records a rejected access attempt.
func (s *SecurityEvent) Denied() bool {
	return !s.Allowed
}
