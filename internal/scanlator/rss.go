package scanlator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/normalize"
	"manga_tracker/internal/page"
)

func init() {
	Register("rss", NewRSS)
}

// RSS handles sites that publish a chapter feed. The mapping URL is the feed
// URL itself, so no page driving is needed; the injected page is unused.
type RSS struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

func NewRSS(_ page.Page, logger *slog.Logger) Scanlator {
	return &RSS{
		parser: gofeed.NewParser(),
		logger: logger.With("site", "rss"),
	}
}

func (s *RSS) Name() string { return "RSS Feed" }

// Search is not meaningful for a bare feed; mappings are curated by hand.
func (s *RSS) Search(ctx context.Context, title string) ([]SearchResult, error) {
	s.logger.Debug("search not supported for rss feeds", "query", title)
	return []SearchResult{}, nil
}

func (s *RSS) FetchChapters(ctx context.Context, feedURL string) ([]domain.RawChapter, error) {
	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss: parse feed %s: %w", feedURL, err)
	}

	var chapters []domain.RawChapter
	seen := map[string]bool{}

	for _, item := range feed.Items {
		if item.Link == "" || seen[item.Link] {
			continue
		}
		seen[item.Link] = true

		title := item.Title
		chapter := domain.RawChapter{
			Number: mustNumber(item.Title, s.logger),
			Title:  &title,
			URL:    item.Link,
		}

		if item.PublishedParsed != nil {
			t := *item.PublishedParsed
			chapter.PublishedAt = &t
		} else if item.Published != "" {
			t := normalize.Date(item.Published, s.logger)
			chapter.PublishedAt = &t
		}

		chapters = append(chapters, chapter)
	}

	sortChapters(chapters)
	s.logger.Info("extracted chapters from feed", "url", feedURL, "count", len(chapters))
	if chapters == nil {
		chapters = []domain.RawChapter{}
	}
	return chapters, nil
}
