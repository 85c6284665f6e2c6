package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"manga_tracker/internal/config"
	"manga_tracker/internal/domain"
	"manga_tracker/internal/page"
)

// Tracker runs tracking jobs: it fans a run out over the eligible source
// mappings, drives one site adapter per mapping against a shared page,
// persists newly seen chapters and keeps per-job state in the Jobs registry.
//
// Mappings are processed sequentially within a job; the shared page would
// serialize them anyway, and one slow run is cheaper than one page per
// mapping. Failures never cross a mapping boundary.
type Tracker struct {
	mappings MappingStore
	chapters ChapterStore
	errs     ErrorStore
	targets  TargetStore
	resolver AdapterResolver
	pages    PageFactory
	notifier Notifier
	jobs     *Jobs
	logger   *slog.Logger
	cfg      config.TrackingConfig
}

func NewTracker(
	mappings MappingStore,
	chapters ChapterStore,
	errs ErrorStore,
	targets TargetStore,
	resolver AdapterResolver,
	pages PageFactory,
	notifier Notifier,
	logger *slog.Logger,
	cfg config.TrackingConfig,
) *Tracker {
	return &Tracker{
		mappings: mappings,
		chapters: chapters,
		errs:     errs,
		targets:  targets,
		resolver: resolver,
		pages:    pages,
		notifier: notifier,
		jobs:     NewJobs(),
		logger:   logger.With("component", "tracker"),
		cfg:      cfg,
	}
}

// Trigger registers a new pending job and starts it in the background,
// returning the job id immediately. Callers poll GetStatus for progress.
func (t *Tracker) Trigger(targetID, siteID *int64, notify bool) string {
	jobID := t.jobs.Create()

	go t.run(jobID, targetID, siteID, notify)

	t.logger.Info("tracking job queued",
		"job_id", jobID,
		"target_id", idOrAll(targetID),
		"site_id", idOrAll(siteID),
		"notify", notify,
	)
	return jobID
}

// GetStatus returns a snapshot of the job state, or false for an unknown id.
func (t *Tracker) GetStatus(jobID string) (domain.TrackingJob, bool) {
	return t.jobs.Get(jobID)
}

// ListRecent returns the most recent job summaries, newest first.
func (t *Tracker) ListRecent(limit int) []domain.JobSummary {
	return t.jobs.List(limit)
}

// run executes one job to completion. The job owns its own context: once
// triggered, a run is never cancelled from outside.
func (t *Tracker) run(jobID string, targetID, siteID *int64, notify bool) {
	ctx := context.Background()
	logger := t.logger.With("job_id", jobID)

	t.jobs.update(jobID, func(j *domain.TrackingJob) {
		now := time.Now()
		j.Status = domain.JobRunning
		j.StartedAt = &now
	})

	defer t.jobs.update(jobID, func(j *domain.TrackingJob) {
		now := time.Now()
		j.CompletedAt = &now
	})

	mappings, err := t.mappings.Eligible(ctx, targetID, siteID)
	if err != nil {
		t.failJob(jobID, fmt.Errorf("query eligible mappings: %w", err))
		return
	}

	t.jobs.update(jobID, func(j *domain.TrackingJob) {
		j.TotalMappings = len(mappings)
	})
	logger.Info("processing mappings", "count", len(mappings))

	var pg page.Page
	if len(mappings) > 0 {
		// One page for the whole job; adapters take turns on it.
		pg, err = t.pages.NewPage(ctx)
		if err != nil {
			t.failJob(jobID, fmt.Errorf("acquire page: %w", err))
			return
		}
		defer pg.Close()
	}

	for i, mapping := range mappings {
		if err := t.processMapping(ctx, jobID, mapping, pg); err != nil {
			t.recordMappingError(ctx, jobID, mapping, err)
		}

		t.jobs.update(jobID, func(j *domain.TrackingJob) {
			j.ProcessedMappings++
		})

		if err := t.targets.TouchLastChecked(ctx, mapping.TargetID); err != nil {
			logger.Warn("failed to update last-checked", "target_id", mapping.TargetID, "error", err)
		}

		if i < len(mappings)-1 {
			t.pause()
		}
	}

	t.jobs.update(jobID, func(j *domain.TrackingJob) {
		j.Status = domain.JobCompleted
	})

	job, _ := t.jobs.Get(jobID)
	logger.Info("tracking job completed",
		"processed", job.ProcessedMappings,
		"new_chapters", job.NewChapters,
		"errors", len(job.Errors),
	)

	if notify && job.NewChapters > 0 && t.notifier != nil {
		if err := t.notifier.Notify(ctx, job.Found); err != nil {
			// Delivery problems never flip a finished job to failed.
			logger.Error("notification failed", "error", err)
		}
	}
}

// processMapping checks one mapping for new chapters. Any error it returns
// is absorbed by the caller; it must not abort the job.
func (t *Tracker) processMapping(ctx context.Context, jobID string, mapping domain.SourceMapping, pg page.Page) error {
	logger := t.logger.With("job_id", jobID, "mapping_id", mapping.ID)
	logger.Info("tracking", "target", mapping.TargetTitle, "site", mapping.SiteName)

	ctor, ok := t.resolver.Resolve(mapping.SiteAdapterID)
	if !ok {
		return fmt.Errorf("no adapter registered for id %q", mapping.SiteAdapterID)
	}
	adapter := ctor(pg, t.logger)

	raw, err := adapter.FetchChapters(ctx, mapping.URL)
	if err != nil {
		return fmt.Errorf("fetch chapters: %w", err)
	}

	for _, rc := range raw {
		exists, err := t.chapters.Exists(ctx, mapping.ID, rc.Number)
		if err != nil {
			return fmt.Errorf("check chapter %s: %w", rc.Number, err)
		}
		if exists {
			continue
		}

		chapter := &domain.Chapter{
			MappingID:   mapping.ID,
			Number:      rc.Number,
			Title:       rc.Title,
			URL:         rc.URL,
			PublishedAt: rc.PublishedAt,
			DetectedAt:  time.Now(),
		}

		inserted, err := t.chapters.Insert(ctx, chapter)
		if err != nil {
			return fmt.Errorf("insert chapter %s: %w", rc.Number, err)
		}
		if !inserted {
			// Lost a race with a concurrent job; the chapter is there.
			continue
		}

		t.jobs.update(jobID, func(j *domain.TrackingJob) {
			j.NewChapters++
			j.Found = append(j.Found, domain.NewChapterSummary{
				TargetTitle: mapping.TargetTitle,
				Number:      chapter.Number,
				Title:       chapter.Title,
				URL:         chapter.URL,
				SiteName:    mapping.SiteName,
				DetectedAt:  chapter.DetectedAt,
			})
		})

		logger.Info("new chapter", "target", mapping.TargetTitle, "number", chapter.Number)
	}

	return nil
}

func (t *Tracker) recordMappingError(ctx context.Context, jobID string, mapping domain.SourceMapping, err error) {
	t.logger.Error("mapping failed",
		"job_id", jobID,
		"mapping_id", mapping.ID,
		"target", mapping.TargetTitle,
		"site", mapping.SiteName,
		"error", err,
	)

	record := &domain.ScrapingError{
		MappingID: &mapping.ID,
		ErrorType: classifyError(err),
		Message:   err.Error(),
	}
	if recErr := t.errs.Record(ctx, record); recErr != nil {
		t.logger.Error("failed to persist scraping error", "job_id", jobID, "error", recErr)
	}

	msg := fmt.Sprintf("%s on %s: %v", mapping.TargetTitle, mapping.SiteName, err)
	t.jobs.update(jobID, func(j *domain.TrackingJob) {
		j.Errors = append(j.Errors, msg)
	})
}

func (t *Tracker) failJob(jobID string, err error) {
	t.logger.Error("tracking job failed", "job_id", jobID, "error", err)
	t.jobs.update(jobID, func(j *domain.TrackingJob) {
		j.Status = domain.JobFailed
		j.Errors = append(j.Errors, err.Error())
	})
}

// pause sleeps a random duration within the configured bounds so consecutive
// mappings do not hammer the same site.
func (t *Tracker) pause() {
	min, max := t.cfg.DelayMin, t.cfg.DelayMax
	if max < min {
		max = min
	}
	delay := min
	if span := max - min; span > 0 {
		delay += rand.N(span)
	}
	time.Sleep(delay)
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, page.ErrNavigation):
		return "navigation"
	case errors.Is(err, page.ErrBadStatus):
		return "http_status"
	default:
		return "extraction"
	}
}

func idOrAll(id *int64) any {
	if id == nil {
		return "all"
	}
	return *id
}
