package domain

import "time"

// TargetStatus is the reading status of a tracked work.
type TargetStatus string

const (
	StatusReading    TargetStatus = "reading"
	StatusCompleted  TargetStatus = "completed"
	StatusOnHold     TargetStatus = "on_hold"
	StatusPlanToRead TargetStatus = "plan_to_read"
)

// Target is a tracked work (a comic series). Targets are created by external
// ingestion; the tracker only touches LastChecked.
type Target struct {
	ID          int64        `db:"id"`
	Title       string       `db:"title"`
	Status      TargetStatus `db:"status"`
	AltTitles   *string      `db:"alt_titles"`
	CoverURL    *string      `db:"cover_url"`
	LastChecked *time.Time   `db:"last_checked"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// Site is one scanlator website. AdapterID is the stable registry key,
// decoupled from the display name.
type Site struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	AdapterID string    `db:"adapter_id"`
	BaseURL   string    `db:"base_url"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// SourceMapping associates one target with one site via a site-specific URL.
// Only manually verified mappings are eligible for automatic tracking.
type SourceMapping struct {
	ID        int64     `db:"id"`
	TargetID  int64     `db:"target_id"`
	SiteID    int64     `db:"site_id"`
	URL       string    `db:"url"`
	Verified  bool      `db:"verified"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`

	// Joined fields, populated by the eligible-mappings query.
	TargetTitle   string `db:"target_title"`
	SiteName      string `db:"site_name"`
	SiteAdapterID string `db:"site_adapter_id"`
}
