package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/page"
	"manga_tracker/internal/scanlator"
)

type MappingStore interface {
	Eligible(ctx context.Context, targetID, siteID *int64) ([]domain.SourceMapping, error)
}

type ChapterStore interface {
	Exists(ctx context.Context, mappingID int64, number string) (bool, error)
	Insert(ctx context.Context, chapter *domain.Chapter) (bool, error)
}

type ErrorStore interface {
	Record(ctx context.Context, e *domain.ScrapingError) error
}

type TargetStore interface {
	TouchLastChecked(ctx context.Context, targetID int64) error
}

// AdapterResolver maps a stable adapter identifier to its constructor.
type AdapterResolver interface {
	Resolve(id string) (scanlator.Constructor, bool)
}

type PageFactory interface {
	NewPage(ctx context.Context) (page.Page, error)
}

// Notifier delivers the new-chapter payload. Called at most once per job.
type Notifier interface {
	Notify(ctx context.Context, chapters []domain.NewChapterSummary) error
}
