package scanlator

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/normalize"
	"manga_tracker/internal/page"
)

func init() {
	Register("asura", NewAsura)
}

// Asura extracts chapters from asuracomic.net. The site renders series cards
// in a grid and chapter links under /chapter paths, with dates embedded in
// the link text either as "January 15 2026" style or as relative "2 days ago".
type Asura struct {
	page    page.Page
	logger  *slog.Logger
	baseURL string
}

func NewAsura(p page.Page, logger *slog.Logger) Scanlator {
	return &Asura{
		page:    p,
		logger:  logger.With("site", "asura"),
		baseURL: "https://asuracomic.net",
	}
}

func (s *Asura) Name() string { return "Asura Scans" }

var (
	asuraGenreTags = map[string]bool{"MANHWA": true, "MANGA": true, "MANHUA": true, "WEBTOON": true}
	asuraDateText  = regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}|\d+\s+(?:second|minute|hour|day|week|month|year)s?\s+ago`)
)

func (s *Asura) Search(ctx context.Context, title string) ([]SearchResult, error) {
	searchURL := fmt.Sprintf("%s/series?name=%s", s.baseURL, url.QueryEscape(title))

	ok, err := loadPage(ctx, s.page, searchURL, "asura", s.logger)
	if err != nil || !ok {
		return []SearchResult{}, nil
	}

	if !s.page.WaitFor(ctx, ".grid", waitTimeout) {
		s.logger.Debug("no results grid", "query", title)
		return []SearchResult{}, nil
	}

	var results []SearchResult
	seen := map[string]bool{}

	s.page.Find(`.grid a[href*="series/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		u := resolveHref(searchURL, href)
		if u == "" || seen[u] {
			return
		}

		resultTitle := asuraCardTitle(a)
		if resultTitle == "" {
			return
		}

		cover, _ := a.Find("img").First().Attr("src")
		if cover == "" {
			cover, _ = a.Find("img").First().Attr("data-src")
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

// asuraCardTitle digs the series title out of a card, skipping the genre
// badge spans the theme mixes in.
func asuraCardTitle(card *goquery.Selection) string {
	title := ""
	card.Find(`h3, span[class*="font"], span[class*="text"], span`).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		if len(text) > 2 && !asuraGenreTags[strings.ToUpper(text)] {
			title = text
			return false
		}
		return true
	})
	return title
}

func (s *Asura) FetchChapters(ctx context.Context, targetURL string) ([]domain.RawChapter, error) {
	ok, err := loadPage(ctx, s.page, targetURL, "asura", s.logger)
	if err != nil {
		return nil, fmt.Errorf("asura: load %s: %w", targetURL, err)
	}
	if !ok {
		return []domain.RawChapter{}, nil
	}

	if !s.page.WaitFor(ctx, `a[href*="/chapter"]`, waitTimeout) {
		s.logger.Error("chapter list never appeared", "url", targetURL)
		return []domain.RawChapter{}, nil
	}

	var chapters []domain.RawChapter
	seen := map[string]bool{}

	s.page.Find(`a[href*="/chapter"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		u := resolveHref(targetURL, href)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true

		text := squashSpace(a.Text())
		if text == "" {
			return
		}

		chapter := domain.RawChapter{
			Number: mustNumber(text, s.logger),
			URL:    u,
		}
		title := text
		chapter.Title = &title

		if dateText := asuraDateText.FindString(a.Text()); dateText != "" {
			t := normalize.Date(dateText, s.logger)
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

func mustNumber(text string, logger *slog.Logger) string {
	n, _ := normalize.ChapterNumber(text, logger)
	return n
}

func squashSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolveHref(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
