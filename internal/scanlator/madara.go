package scanlator

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/normalize"
	"manga_tracker/internal/page"
)

func init() {
	Register("madara", NewMadara)
}

// madaraMaxLoadMore bounds how many "load more" interactions we follow before
// settling for whatever is visible.
const madaraMaxLoadMore = 10

// Madara extracts chapters from madarascans.com, which runs the common Madara
// WordPress theme: chapters in li.wp-manga-chapter entries with a separate
// release-date span, and older chapters hidden behind a "load more" control.
type Madara struct {
	page    page.Page
	logger  *slog.Logger
	baseURL string
}

func NewMadara(p page.Page, logger *slog.Logger) Scanlator {
	return &Madara{
		page:    p,
		logger:  logger.With("site", "madara"),
		baseURL: "https://madarascans.com",
	}
}

func (s *Madara) Name() string { return "Madara Scans" }

func (s *Madara) Search(ctx context.Context, title string) ([]SearchResult, error) {
	searchURL := fmt.Sprintf("%s/?s=%s&post_type=wp-manga", s.baseURL, url.QueryEscape(title))

	ok, err := loadPage(ctx, s.page, searchURL, "madara", s.logger)
	if err != nil || !ok {
		return []SearchResult{}, nil
	}

	if !s.page.WaitFor(ctx, ".c-tabs-item__content", waitTimeout) {
		s.logger.Debug("no search results container", "query", title)
		return []SearchResult{}, nil
	}

	var results []SearchResult
	seen := map[string]bool{}

	s.page.Find(".c-tabs-item__content").Each(func(_ int, item *goquery.Selection) {
		link := item.Find(".post-title a").First()
		href, _ := link.Attr("href")
		u := resolveHref(searchURL, href)
		if u == "" || seen[u] {
			return
		}

		resultTitle := squashSpace(link.Text())
		if resultTitle == "" {
			return
		}

		cover, _ := item.Find("img").First().Attr("src")
		if cover == "" {
			cover, _ = item.Find("img").First().Attr("data-src")
		}

		seen[u] = true
		results = append(results, SearchResult{Title: resultTitle, URL: u, CoverURL: resolveHref(searchURL, cover)})
	})

	s.logger.Info("search finished", "query", title, "results", len(results))
	if results == nil {
		results = []SearchResult{}
	}
	return results, nil
}

func (s *Madara) FetchChapters(ctx context.Context, targetURL string) ([]domain.RawChapter, error) {
	ok, err := loadPage(ctx, s.page, targetURL, "madara", s.logger)
	if err != nil {
		return nil, fmt.Errorf("madara: load %s: %w", targetURL, err)
	}
	if !ok {
		return []domain.RawChapter{}, nil
	}

	if !s.page.WaitFor(ctx, "li.wp-manga-chapter", waitTimeout) {
		s.logger.Error("chapter list never appeared", "url", targetURL)
		return []domain.RawChapter{}, nil
	}

	chapters := map[string]domain.RawChapter{}
	s.collectVisible(targetURL, chapters)

	// Reveal the rest of the list. Each successful click replaces the page
	// content, so collect after every step.
	for i := 0; i < madaraMaxLoadMore; i++ {
		before := len(chapters)
		if !s.page.Click(ctx, ".chapter-readmore a, a.load-more, .load-more-chapters a") {
			break
		}
		s.collectVisible(s.page.URL(), chapters)
		if len(chapters) == before {
			break
		}
	}

	out := make([]domain.RawChapter, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, c)
	}

	sortChapters(out)
	s.logger.Info("extracted chapters", "url", targetURL, "count", len(out))
	return out, nil
}

func (s *Madara) collectVisible(baseURL string, into map[string]domain.RawChapter) {
	s.page.Find("li.wp-manga-chapter").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		href, _ := link.Attr("href")
		u := resolveHref(baseURL, href)
		if u == "" {
			return
		}
		if _, dup := into[u]; dup {
			return
		}

		text := squashSpace(link.Text())
		if text == "" {
			return
		}

		title := text
		chapter := domain.RawChapter{
			Number: mustNumber(text, s.logger),
			Title:  &title,
			URL:    u,
		}

		dateText := squashSpace(item.Find(".chapter-release-date").Text())
		if dateText == "" {
			dateText = squashSpace(item.Find("span.date, time").First().Text())
		}
		if dateText != "" {
			t := normalize.Date(dateText, s.logger)
			chapter.PublishedAt = &t
		}

		into[u] = chapter
	})
}
