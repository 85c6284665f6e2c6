package domain

import "time"

// RawChapter is the contract boundary between a site adapter and the tracker:
// a chapter as extracted from the site, already normalized but not persisted.
type RawChapter struct {
	Number      string
	Title       *string
	URL         string
	PublishedAt *time.Time
}

// Chapter is a persisted chapter record. The pair (MappingID, Number) is
// unique; it is the idempotency key across repeated tracking runs.
type Chapter struct {
	ID           int64      `db:"id"`
	MappingID    int64      `db:"mapping_id"`
	Number       string     `db:"chapter_number"`
	Title        *string    `db:"title"`
	URL          string     `db:"url"`
	PublishedAt  *time.Time `db:"published_at"`
	DetectedAt   time.Time  `db:"detected_at"`
	Read         bool       `db:"read"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`

	// Joined fields for the unread listing.
	TargetTitle string `db:"target_title"`
	SiteName    string `db:"site_name"`
}

// NewChapterSummary is the public-facing payload handed to the notifier for
// each newly detected chapter.
type NewChapterSummary struct {
	TargetTitle string     `json:"target_title"`
	Number      string     `json:"chapter_number"`
	Title       *string    `json:"title,omitempty"`
	URL         string     `json:"url"`
	SiteName    string     `json:"site_name"`
	DetectedAt  time.Time  `json:"detected_date"`
}

// ScrapingError is an append-only audit record of a per-mapping failure.
type ScrapingError struct {
	ID        int64     `db:"id"`
	MappingID *int64    `db:"mapping_id"`
	ErrorType string    `db:"error_type"`
	Message   string    `db:"message"`
	Resolved  bool      `db:"resolved"`
	CreatedAt time.Time `db:"created_at"`
}
