// Package scheduler runs background jobs on cron schedules. The only job is
// the ledger audit: it detects units whose status disagrees with the head of
// their status history. It reports, it does not repair.
package scheduler

import (
	"context"
	"time"

	"github.com/estateflow/backend/internal/domain/property"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MismatchFinder lists units whose status or sequence disagrees with their ledger
type MismatchFinder interface {
	FindMismatches(ctx context.Context) ([]property.LedgerMismatch, error)
}

// AuditRecorder receives the outcome of every audit run
type AuditRecorder interface {
	RecordLedgerAudit(ctx context.Context, mismatches int, elapsed time.Duration)
}

// AuditReport summarizes one audit run
type AuditReport struct {
	StartedAt  time.Time
	Elapsed    time.Duration
	Mismatches []property.LedgerMismatch
	ByTenant   map[uuid.UUID]int
}

// LedgerAuditJob compares every unit with its latest history entry
type LedgerAuditJob struct {
	finder   MismatchFinder
	recorder AuditRecorder
	logger   *zap.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewLedgerAuditJob creates the job. A zero timeout means no deadline beyond the caller's.
func NewLedgerAuditJob(finder MismatchFinder, logger *zap.Logger, timeout time.Duration) *LedgerAuditJob {
	return &LedgerAuditJob{
		finder:  finder,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// WithRecorder sets the metrics recorder
func (j *LedgerAuditJob) WithRecorder(r AuditRecorder) *LedgerAuditJob {
	j.recorder = r
	return j
}

// Run performs one audit
func (j *LedgerAuditJob) Run(ctx context.Context) (*AuditReport, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	report := &AuditReport{StartedAt: j.now(), ByTenant: make(map[uuid.UUID]int)}
	mismatches, err := j.finder.FindMismatches(ctx)
	report.Elapsed = j.now().Sub(report.StartedAt)
	if err != nil {
		j.logger.Error("Ledger audit failed", zap.Duration("elapsed", report.Elapsed), zap.Error(err))
		return nil, err
	}
	report.Mismatches = mismatches

	for _, m := range mismatches {
		report.ByTenant[m.TenantID]++
		j.logger.Warn("Unit ledger mismatch",
			zap.String("tenant_id", m.TenantID.String()),
			zap.String("unit_id", m.UnitID.String()),
			zap.String("unit_number", m.UnitNumber),
			zap.String("unit_status", m.UnitStatus.String()),
			zap.Int("unit_seq", m.UnitSeq),
			zap.String("ledger_status", m.LedgerStatus.String()),
			zap.Int("ledger_sequence", m.LedgerSequence),
		)
	}

	if j.recorder != nil {
		j.recorder.RecordLedgerAudit(ctx, len(mismatches), report.Elapsed)
	}

	j.logger.Info("Ledger audit completed",
		zap.Int("mismatches", len(mismatches)),
		zap.Int("tenants_affected", len(report.ByTenant)),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}
