package scheduler

import (
	"context"
	"log/slog"
	"time"

	"manga_tracker/internal/domain"
)

// Trigger is the slice of the tracker the scheduler drives.
type Trigger interface {
	Trigger(targetID, siteID *int64, notify bool) string
	GetStatus(jobID string) (domain.TrackingJob, bool)
}

// Scheduler kicks off a full tracking run on a fixed interval. Runs are
// skipped, not queued, while the previous job is still going.
type Scheduler struct {
	tracker  Trigger
	interval time.Duration
	logger   *slog.Logger

	pollInterval time.Duration
}

func NewScheduler(tracker Trigger, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		tracker:      tracker,
		interval:     interval,
		logger:       logger,
		pollInterval: 2 * time.Second,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	activeJob := s.tracker.Trigger(nil, nil, true)
	s.logger.Info("scheduled tracking run started", "job_id", activeJob)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if activeJob != "" && !s.finished(activeJob) {
				s.logger.Warn("previous tracking run still active, skipping", "job_id", activeJob)
				continue
			}
			activeJob = s.tracker.Trigger(nil, nil, true)
			s.logger.Info("scheduled tracking run started", "job_id", activeJob)
		}
	}
}

func (s *Scheduler) finished(jobID string) bool {
	job, ok := s.tracker.GetStatus(jobID)
	if !ok {
		return true
	}
	return job.Status.Terminal()
}

// RunOnce triggers a single tracking run and blocks until it reaches a
// terminal state or the context expires. Used by the one-shot CLI command.
func (s *Scheduler) RunOnce(ctx context.Context, targetID, siteID *int64, notify bool) (domain.TrackingJob, error) {
	jobID := s.tracker.Trigger(targetID, siteID, notify)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			job, _ := s.tracker.GetStatus(jobID)
			return job, ctx.Err()
		case <-ticker.C:
			job, ok := s.tracker.GetStatus(jobID)
			if !ok {
				continue
			}
			if job.Status.Terminal() {
				return job, nil
			}
		}
	}
}
