package scanlator

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/normalize"
	"manga_tracker/internal/page"
)

func init() {
	Register("raven", NewRaven)
}

// Raven extracts chapters from ravenscans.org, a WordPress manga theme. Each
// chapter lives in a .chbox container whose link text carries the chapter
// label on the first line and the release date on the second.
type Raven struct {
	page    page.Page
	logger  *slog.Logger
	baseURL string
}

func NewRaven(p page.Page, logger *slog.Logger) Scanlator {
	return &Raven{
		page:    p,
		logger:  logger.With("site", "raven"),
		baseURL: "https://ravenscans.org",
	}
}

func (s *Raven) Name() string { return "Raven Scans" }

func (s *Raven) Search(ctx context.Context, title string) ([]SearchResult, error) {
	searchURL := fmt.Sprintf("%s/?s=%s", s.baseURL, url.QueryEscape(title))

	ok, err := loadPage(ctx, s.page, searchURL, "raven", s.logger)
	if err != nil || !ok {
		return []SearchResult{}, nil
	}

	if !s.page.WaitFor(ctx, "article.item-thumb, .c-tabs-item__content", waitTimeout) {
		s.logger.Debug("no search results container", "query", title)
		return []SearchResult{}, nil
	}

	var results []SearchResult
	seen := map[string]bool{}

	s.page.Find("article.item-thumb, .c-tabs-item__content, .manga-item").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		href, _ := link.Attr("href")
		u := resolveHref(searchURL, href)
		if u == "" || seen[u] {
			return
		}

		resultTitle := strings.TrimSpace(link.AttrOr("title", ""))
		if resultTitle == "" {
			resultTitle = squashSpace(link.Text())
		}
		if resultTitle == "" {
			return
		}

		cover, _ := item.Find("img").First().Attr("src")

		seen[u] = true
		results = append(results, SearchResult{Title: resultTitle, URL: u, CoverURL: resolveHref(searchURL, cover)})
	})

	s.logger.Info("search finished", "query", title, "results", len(results))
	if results == nil {
		results = []SearchResult{}
	}
	return results, nil
}

func (s *Raven) FetchChapters(ctx context.Context, targetURL string) ([]domain.RawChapter, error) {
	ok, err := loadPage(ctx, s.page, targetURL, "raven", s.logger)
	if err != nil {
		return nil, fmt.Errorf("raven: load %s: %w", targetURL, err)
	}
	if !ok {
		return []domain.RawChapter{}, nil
	}

	if !s.page.WaitFor(ctx, ".chbox", waitTimeout) {
		s.logger.Error("chapter list never appeared", "url", targetURL)
		return []domain.RawChapter{}, nil
	}

	var chapters []domain.RawChapter
	seen := map[string]bool{}

	s.page.Find(".chbox").Each(func(_ int, box *goquery.Selection) {
		link := box.Find(".eph-num a").First()
		href, _ := link.Attr("href")
		u := resolveHref(targetURL, href)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true

		// Link text comes as "Chapter 147\nSeptember 11, 2025".
		lines := nonEmptyLines(link.Text())
		if len(lines) == 0 {
			return
		}

		title := lines[0]
		chapter := domain.RawChapter{
			Number: mustNumber(lines[0], s.logger),
			Title:  &title,
			URL:    u,
		}

		if len(lines) > 1 {
			t := normalize.Date(lines[1], s.logger)
			chapter.PublishedAt = &t
		}

		chapters = append(chapters, chapter)
	})

	sortChapters(chapters)
	s.logger.Info("extracted chapters", "url", targetURL, "count", len(chapters))
	if chapters == nil {
		chapters = []domain.RawChapter{}
	}
	return chapters, nil
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
