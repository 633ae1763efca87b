package telemetry

import (
	"context"
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// TransitionMetrics holds the unit lifecycle instruments
type TransitionMetrics struct {
	transitions   metric.Int64Counter
	mismatches    metric.Int64Gauge
	auditDuration metric.Float64Histogram
}

// NewTransitionMetrics creates the instruments on meter
func NewTransitionMetrics(meter metric.Meter) (*TransitionMetrics, error) {
	transitions, err := meter.Int64Counter(
		"unit_status_transitions_total",
		metric.WithDescription("Committed unit status transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	mismatches, err := meter.Int64Gauge(
		"unit_ledger_inconsistencies",
		metric.WithDescription("Units whose status disagrees with their ledger head at the last audit"),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return nil, err
	}

	auditDuration, err := meter.Float64Histogram(
		"unit_ledger_audit_duration_seconds",
		metric.WithDescription("Duration of a ledger audit run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &TransitionMetrics{
		transitions:   transitions,
		mismatches:    mismatches,
		auditDuration: auditDuration,
	}, nil
}

// RecordTransition counts one committed transition
func (m *TransitionMetrics) RecordTransition(ctx context.Context, tenantID string, from, to property.UnitStatus) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tenant_id", tenantID),
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	))
}

// RecordLedgerAudit records the outcome of one audit run
func (m *TransitionMetrics) RecordLedgerAudit(ctx context.Context, mismatches int, elapsed time.Duration) {
	m.mismatches.Record(ctx, int64(mismatches))
	m.auditDuration.Record(ctx, elapsed.Seconds())
}
