package usecase

import (
	"context"

	"github.com/clientguard/clientguard/internal/metrics"
	securityDomain "github.com/clientguard/clientguard/internal/security/domain"
)

// securityEventUseCaseWithMetrics decorates SecurityEventUseCase with metrics instrumentation.
type securityEventUseCaseWithMetrics struct {
	next    SecurityEventUseCase
	metrics metrics.GateMetrics
}

// NewSecurityEventUseCaseWithMetrics wraps a SecurityEventUseCase with gate decision metrics.
func NewSecurityEventUseCaseWithMetrics(
	useCase SecurityEventUseCase,
	m metrics.GateMetrics,
) SecurityEventUseCase {
	return &securityEventUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record counts the gate decision even when the audit write fails, so the
// metrics view stays complete while the durable trail reports its own errors.
func (s *securityEventUseCaseWithMetrics) Record(ctx context.Context, input *RecordEventInput) error {
	s.metrics.RecordDecision(ctx, input.Action, input.Allowed)
	return s.next.Record(ctx, input)
}

// Report passes through without instrumentation.
func (s *securityEventUseCaseWithMetrics) Report(ctx context.Context) (*securityDomain.SecurityReport, error) {
	return s.next.Report(ctx)
}
