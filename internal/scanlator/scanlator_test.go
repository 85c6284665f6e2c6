package scanlator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manga_tracker/internal/domain"
	"manga_tracker/internal/page"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRegistry_ResolveKnownAdapters(t *testing.T) {
	for _, id := range []string{"asura", "raven", "madara", "rss"} {
		ctor, ok := Resolve(id)
		require.True(t, ok, "adapter %q not registered", id)
		require.NotNil(t, ctor)

		s := ctor(newFakePage(), testLogger())
		assert.NotEmpty(t, s.Name())
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	_, ok := Resolve("no-such-site")
	assert.False(t, ok)
}

func TestSortChapters_NumericOrder(t *testing.T) {
	chapters := []domain.RawChapter{
		{Number: "10", URL: "u10"},
		{Number: "2", URL: "u2"},
		{Number: "2.5", URL: "u25"},
	}

	sortChapters(chapters)

	got := []string{chapters[0].Number, chapters[1].Number, chapters[2].Number}
	assert.Equal(t, []string{"2", "2.5", "10"}, got)
}

func TestSortChapters_DateBreaksTies(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	chapters := []domain.RawChapter{
		{Number: "0", URL: "b", PublishedAt: &late},
		{Number: "0", URL: "a", PublishedAt: &early},
	}

	sortChapters(chapters)

	assert.Equal(t, "a", chapters[0].URL)
	assert.Equal(t, "b", chapters[1].URL)
}

const ravenSeriesHTML = `<html><body>
<div class="chbox"><div class="eph-num"><a href="/solo-max/chapter-10/">Chapter 10
September 11, 2025</a></div></div>
<div class="chbox"><div class="eph-num"><a href="/solo-max/chapter-2/">Chapter 2
January 3, 2025</a></div></div>
<div class="chbox"><div class="eph-num"><a href="/solo-max/chapter-2-5/">Chapter 2.5
February 1, 2025</a></div></div>
<div class="chbox"><div class="eph-num"><a href="/solo-max/chapter-2/">Chapter 2
January 3, 2025</a></div></div>
</body></html>`

func TestRaven_FetchChapters(t *testing.T) {
	p := newFakePage()
	p.serve("https://ravenscans.org/manga/solo-max/", ravenSeriesHTML)

	s := NewRaven(p, testLogger())
	chapters, err := s.FetchChapters(context.Background(), "https://ravenscans.org/manga/solo-max/")
	require.NoError(t, err)

	// Duplicate URL collapsed, ascending numeric order.
	require.Len(t, chapters, 3)
	assert.Equal(t, "2", chapters[0].Number)
	assert.Equal(t, "2.5", chapters[1].Number)
	assert.Equal(t, "10", chapters[2].Number)

	require.NotNil(t, chapters[2].PublishedAt)
	assert.Equal(t, 2025, chapters[2].PublishedAt.Year())
	assert.Equal(t, time.September, chapters[2].PublishedAt.Month())

	require.NotNil(t, chapters[0].Title)
	assert.Equal(t, "Chapter 2", *chapters[0].Title)
}

func TestRaven_FetchChapters_MissingContainer(t *testing.T) {
	p := newFakePage()
	p.serve("https://ravenscans.org/manga/empty/", "<html><body><p>nothing here</p></body></html>")

	s := NewRaven(p, testLogger())
	chapters, err := s.FetchChapters(context.Background(), "https://ravenscans.org/manga/empty/")

	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestRaven_FetchChapters_TransportFailurePropagates(t *testing.T) {
	p := newFakePage()
	p.failNav["https://ravenscans.org/manga/down/"] = fmt.Errorf("%w: dial tcp: no route", page.ErrNavigation)

	s := NewRaven(p, testLogger())
	_, err := s.FetchChapters(context.Background(), "https://ravenscans.org/manga/down/")

	assert.Error(t, err)
}

func TestRaven_FetchChapters_BadStatusReturnsEmpty(t *testing.T) {
	// fakePage returns ErrBadStatus for unknown URLs.
	s := NewRaven(newFakePage(), testLogger())
	chapters, err := s.FetchChapters(context.Background(), "https://ravenscans.org/manga/404/")

	require.NoError(t, err)
	assert.Empty(t, chapters)
}

const asuraSearchHTML = `<html><body><div class="grid">
<a href="/series/solo-max"><span>MANHWA</span><h3>Solo Max-Level Newbie</h3><img src="/cover1.jpg"></a>
<a href="/series/other"><h3>Other Series</h3><img src="/cover2.jpg"></a>
<a href="/series/solo-max"><h3>Solo Max-Level Newbie</h3></a>
</div></body></html>`

func TestAsura_Search(t *testing.T) {
	p := newFakePage()
	p.serve("https://asuracomic.net/series?name=solo+max", asuraSearchHTML)

	s := NewAsura(p, testLogger())
	results, err := s.Search(context.Background(), "solo max")
	require.NoError(t, err)

	// Deduplicated by URL, genre badge skipped in favor of the real title.
	require.Len(t, results, 2)
	assert.Equal(t, "Solo Max-Level Newbie", results[0].Title)
	assert.Equal(t, "https://asuracomic.net/series/solo-max", results[0].URL)
	assert.Equal(t, "https://asuracomic.net/cover1.jpg", results[0].CoverURL)
}

func TestAsura_Search_NoResultsContainer(t *testing.T) {
	p := newFakePage()
	p.serve("https://asuracomic.net/series?name=zzz", "<html><body></body></html>")

	s := NewAsura(p, testLogger())
	results, err := s.Search(context.Background(), "zzz")

	require.NoError(t, err)
	assert.Empty(t, results)
}

const asuraSeriesHTML = `<html><body>
<a href="/series/solo-max/chapter/3"><h3>Chapter 3</h3><span>2 days ago</span></a>
<a href="/series/solo-max/chapter/1"><h3>First Chapter</h3><span>January 5, 2025</span></a>
<a href="/series/solo-max/chapter/2"><h3>Chapter 2: Awakening</h3><span>3 weeks ago</span></a>
</body></html>`

func TestAsura_FetchChapters(t *testing.T) {
	p := newFakePage()
	p.serve("https://asuracomic.net/series/solo-max", asuraSeriesHTML)

	s := NewAsura(p, testLogger())
	chapters, err := s.FetchChapters(context.Background(), "https://asuracomic.net/series/solo-max")
	require.NoError(t, err)

	require.Len(t, chapters, 3)
	assert.Equal(t, "1", chapters[0].Number) // "First Chapter"
	assert.Equal(t, "2", chapters[1].Number)
	assert.Equal(t, "3", chapters[2].Number)

	// Relative date was resolved for chapter 3.
	require.NotNil(t, chapters[2].PublishedAt)
	assert.WithinDuration(t, time.Now().Add(-48*time.Hour), *chapters[2].PublishedAt, time.Minute)
}

const madaraPage1HTML = `<html><body><ul>
<li class="wp-manga-chapter"><a href="/manga/x/chapter-20/">Chapter 20</a><span class="chapter-release-date">Jan 10, 2026</span></li>
<li class="wp-manga-chapter"><a href="/manga/x/chapter-19/">Chapter 19</a><span class="chapter-release-date">Jan 3, 2026</span></li>
</ul><div class="chapter-readmore"><a href="/manga/x/page/2/">Load More</a></div></body></html>`

const madaraPage2HTML = `<html><body><ul>
<li class="wp-manga-chapter"><a href="/manga/x/chapter-18/">Chapter 18</a><span class="chapter-release-date">Dec 20, 2025</span></li>
<li class="wp-manga-chapter"><a href="/manga/x/chapter-19/">Chapter 19</a><span class="chapter-release-date">Jan 3, 2026</span></li>
</ul></body></html>`

func TestMadara_FetchChapters_FollowsLoadMore(t *testing.T) {
	p := newFakePage()
	p.serve("https://madarascans.com/manga/x/", madaraPage1HTML)
	p.serve("https://madarascans.com/manga/x/page/2/", madaraPage2HTML)

	s := NewMadara(p, testLogger())
	chapters, err := s.FetchChapters(context.Background(), "https://madarascans.com/manga/x/")
	require.NoError(t, err)

	require.Len(t, chapters, 3)
	assert.Equal(t, "18", chapters[0].Number)
	assert.Equal(t, "19", chapters[1].Number)
	assert.Equal(t, "20", chapters[2].Number)
}
