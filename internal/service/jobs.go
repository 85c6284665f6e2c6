package service

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"manga_tracker/internal/domain"
)

// Jobs is the in-memory registry of tracking jobs. Job state is mutated by
// the background goroutine running the job while status polls read it, so
// every access goes through the one lock and reads return copies, never the
// live struct. Jobs are not persisted; history dies with the process.
type Jobs struct {
	mu   sync.Mutex
	jobs map[string]*domain.TrackingJob
}

func NewJobs() *Jobs {
	return &Jobs{jobs: map[string]*domain.TrackingJob{}}
}

// Create registers a new pending job and returns its id.
func (r *Jobs) Create() string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[id] = &domain.TrackingJob{ID: id, Status: domain.JobPending}
	return id
}

// Get returns a snapshot of the job, or false for an unknown id.
func (r *Jobs) Get(id string) (domain.TrackingJob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return domain.TrackingJob{}, false
	}
	return snapshot(job), true
}

// List returns summaries of the most recent jobs, newest first.
func (r *Jobs) List(limit int) []domain.JobSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*domain.TrackingJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		all = append(all, job)
	}

	sort.Slice(all, func(i, j int) bool {
		return startedAt(all[i]).After(startedAt(all[j]))
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	summaries := make([]domain.JobSummary, 0, len(all))
	for _, job := range all {
		summaries = append(summaries, domain.JobSummary{
			ID:          job.ID,
			Status:      job.Status,
			StartedAt:   copyTime(job.StartedAt),
			NewChapters: job.NewChapters,
		})
	}
	return summaries
}

// update applies fn to the live job under the lock. Unknown ids are ignored;
// the only writer is the goroutine that created the job.
func (r *Jobs) update(id string, fn func(*domain.TrackingJob)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job, ok := r.jobs[id]; ok {
		fn(job)
	}
}

func snapshot(job *domain.TrackingJob) domain.TrackingJob {
	out := *job
	out.StartedAt = copyTime(job.StartedAt)
	out.CompletedAt = copyTime(job.CompletedAt)
	out.Errors = append([]string(nil), job.Errors...)
	out.Found = append([]domain.NewChapterSummary(nil), job.Found...)
	return out
}

func startedAt(job *domain.TrackingJob) time.Time {
	if job.StartedAt == nil {
		return time.Time{}
	}
	return *job.StartedAt
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
