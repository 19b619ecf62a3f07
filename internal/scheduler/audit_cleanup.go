// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/faculty/internal/logger"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// CleanupEnqueuer hands an audit cleanup run to whoever executes it.
type CleanupEnqueuer interface {
	EnqueueAuditCleanup(ctx context.Context, retentionDays int) error
}

// AuditCleanupScheduler periodically requests removal of expired audit events.
type AuditCleanupScheduler struct {
	enqueuer      CleanupEnqueuer
	schedule      string
	retentionDays int
	log           *logger.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	baseCtx   context.Context
}

func NewAuditCleanupScheduler(enqueuer CleanupEnqueuer, schedule string, retentionDays int, log *logger.Logger) *AuditCleanupScheduler {
	if log == nil {
		log = logger.NewNop()
	}
	return &AuditCleanupScheduler{
		enqueuer:      enqueuer,
		schedule:      schedule,
		retentionDays: retentionDays,
		log:           log.Named("scheduler"),
		cron:          cron.New(cron.WithParser(cronParser)),
		baseCtx:       context.Background(),
	}
}

// Start registers the job and starts the cron loop. It stops when ctx is done.
// An empty schedule or non-positive retention leaves the scheduler disabled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" || s.retentionDays <= 0 {
		s.log.Info("Audit cleanup scheduler disabled")
		return nil
	}
	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID
	s.baseCtx = ctx

	s.cron.Start()
	s.isRunning = true

	next, _ := NextRunTime(s.schedule, time.Now())
	s.log.Info("Audit cleanup scheduler started",
		"schedule", s.schedule, "retention_days", s.retentionDays, "next_run", next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the cron loop.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	entryID := s.entryID
	s.mu.Unlock()

	// The job takes the read lock, so wait for it outside ours.
	<-s.cron.Stop().Done()
	s.cron.Remove(entryID)

	s.log.Info("Audit cleanup scheduler stopped")
}

// RunNow requests one cleanup immediately.
func (s *AuditCleanupScheduler) RunNow() {
	s.mu.RLock()
	ctx := s.baseCtx
	s.mu.RUnlock()

	if err := s.enqueuer.EnqueueAuditCleanup(ctx, s.retentionDays); err != nil {
		s.log.Error("Audit cleanup request failed", "error", err)
	}
}

// IsRunning returns whether the scheduler is active
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// ValidateCronSchedule validates a five-field cron schedule string
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// NextRunTime returns the first activation of schedule after from.
func NextRunTime(schedule string, from time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}
