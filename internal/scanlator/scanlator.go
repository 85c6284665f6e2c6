// Package scanlator holds the per-site adapters that extract chapter lists
// from scanlation websites, plus the registry that maps a stable adapter
// identifier to its constructor. Each adapter drives one page.Page instance
// and normalizes whatever the site reports into domain.RawChapter values.
package scanlator

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/normalize"
	"manga_tracker/internal/page"
)

// SearchResult is one candidate from a site search.
type SearchResult struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	CoverURL string `json:"cover_url"`
}

// Scanlator is the contract every site adapter satisfies.
//
// Search is best-effort: it returns an empty slice, not an error, when the
// site yields nothing usable.
//
// FetchChapters returns chapters sorted oldest to newest. Irrecoverable
// page-level failures (missing container, HTTP error status) come back as an
// empty slice; only transport-level navigation failures are returned as
// errors, and converting those into job error records is the tracker's
// responsibility, not the adapter's.
type Scanlator interface {
	Name() string
	Search(ctx context.Context, title string) ([]SearchResult, error)
	FetchChapters(ctx context.Context, targetURL string) ([]domain.RawChapter, error)
}

const waitTimeout = 10 * time.Second

// loadPage navigates and classifies the outcome: ok=false with a nil error
// for HTTP-error statuses (the adapter gives up on this page), a non-nil
// error only for transport-level failures.
func loadPage(ctx context.Context, p page.Page, url, site string, logger *slog.Logger) (bool, error) {
	err := p.Navigate(ctx, url)
	if err == nil {
		logger.Debug("loaded page", "site", site, "url", url)
		return true, nil
	}

	if errors.Is(err, page.ErrBadStatus) {
		logger.Error("failed to load page", "site", site, "url", url, "error", err)
		return false, nil
	}

	return false, err
}

// sortChapters orders entries oldest to newest: numeric chapter number first,
// date as the tie breaker.
func sortChapters(chapters []domain.RawChapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		vi := normalize.ChapterValue(chapters[i].Number)
		vj := normalize.ChapterValue(chapters[j].Number)
		if vi != vj {
			return vi < vj
		}
		ti := chapterTime(chapters[i])
		tj := chapterTime(chapters[j])
		return ti.Before(tj)
	})
}

func chapterTime(c domain.RawChapter) time.Time {
	if c.PublishedAt != nil {
		return *c.PublishedAt
	}
	return time.Time{}
}
