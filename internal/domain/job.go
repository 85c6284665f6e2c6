package domain

import "time"

// JobStatus is the lifecycle state of a tracking job. A job only ever moves
// forward: pending -> running -> completed|failed.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Terminal reports whether the status is a final one.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// TrackingJob is the ephemeral state of one tracking run. It lives only in
// the in-memory job registry and is lost on process restart; the durable
// record of what happened is the chapter and scraping-error tables.
type TrackingJob struct {
	ID                string
	Status            JobStatus
	StartedAt         *time.Time
	CompletedAt       *time.Time
	TotalMappings     int
	ProcessedMappings int
	NewChapters       int
	Errors            []string
	Found             []NewChapterSummary
}

// JobSummary is the reduced view returned by the recent-jobs listing.
type JobSummary struct {
	ID          string     `json:"job_id"`
	Status      JobStatus  `json:"status"`
	StartedAt   *time.Time `json:"started_at"`
	NewChapters int        `json:"new_chapters_found"`
}
