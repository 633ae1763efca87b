package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultAuditSchedule runs the ledger audit at the top of every hour
const DefaultAuditSchedule = "@hourly"

// AuditScheduler runs a LedgerAuditJob on a cron schedule. Overlapping runs are skipped.
type AuditScheduler struct {
	cron     *cron.Cron
	job      *LedgerAuditJob
	schedule string
	logger   *zap.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	running bool
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewAuditScheduler creates a scheduler for job. An empty schedule means DefaultAuditSchedule.
func NewAuditScheduler(job *LedgerAuditJob, schedule string, logger *zap.Logger) *AuditScheduler {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	cl := cronLogger{logger.Sugar()}
	return &AuditScheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		), cron.WithLogger(cl)),
		job:      job,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the job and starts the cron loop. Runs are canceled when ctx is done or Stop is called.
func (s *AuditScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	s.baseCtx, s.cancel = context.WithCancel(ctx)
	id, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.job.Run(s.baseCtx)
	})
	if err != nil {
		s.cancel()
		return fmt.Errorf("invalid audit schedule %q: %w", s.schedule, err)
	}
	s.entryID = id
	s.cron.Start()
	s.running = true

	s.logger.Info("Ledger audit scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop cancels an in-flight run and waits for it, or until ctx is done
func (s *AuditScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cron.Remove(s.entryID)
	s.cancel()
	done := s.cron.Stop()
	s.mu.Unlock()

	select {
	case <-done.Done():
		s.logger.Info("Ledger audit scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow executes the audit immediately, outside the schedule
func (s *AuditScheduler) RunNow(ctx context.Context) (*AuditReport, error) {
	return s.job.Run(ctx)
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
