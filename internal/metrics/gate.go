package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// GateMetrics defines the interface for recording access-gate decision metrics.
// Implementations track how many requests each gate allowed or denied, broken
// down by the audited action tag.
type GateMetrics interface {
	// RecordDecision records one gate decision.
	// Action examples: "unauth_access", "clients_hit", "forbidden_role".
	RecordDecision(ctx context.Context, action string, allowed bool)
}

// gateMetrics implements GateMetrics using OpenTelemetry metrics.
type gateMetrics struct {
	decisionCounter metric.Int64Counter
}

// NewGateMetrics creates a new GateMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "clientguard").
// Returns error if meters cannot be initialized.
func NewGateMetrics(meterProvider metric.MeterProvider, namespace string) (GateMetrics, error) {
	meter := meterProvider.Meter(namespace)

	decisionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_gate_decisions_total", namespace),
		metric.WithDescription("Total number of access-gate decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gate decision counter: %w", err)
	}

	return &gateMetrics{decisionCounter: decisionCounter}, nil
}

// RecordDecision increments the decision counter with action and allowed labels.
func (g *gateMetrics) RecordDecision(ctx context.Context, action string, allowed bool) {
	g.decisionCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("action", action),
			attribute.Bool("allowed", allowed),
		),
	)
}

// NoopGateMetrics returns a GateMetrics that records nothing.
// Used when metrics collection is disabled.
func NoopGateMetrics() GateMetrics {
	return noopGateMetrics{}
}

type noopGateMetrics struct{}

func (noopGateMetrics) RecordDecision(context.Context, string, bool) {}
