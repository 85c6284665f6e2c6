package scanlator

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"manga_tracker/internal/page"
)

// fakePage serves canned HTML per URL, emulating the static-fetch page
// implementation closely enough to exercise adapter extraction.
type fakePage struct {
	pages   map[string]string
	failNav map[string]error

	current string
	doc     *goquery.Document
}

func newFakePage() *fakePage {
	return &fakePage{pages: map[string]string{}, failNav: map[string]error{}}
}

func (f *fakePage) serve(url, html string) { f.pages[url] = html }

func (f *fakePage) Navigate(_ context.Context, target string) error {
	if err, ok := f.failNav[target]; ok {
		return err
	}
	html, ok := f.pages[target]
	if !ok {
		return fmt.Errorf("%w: 404 for %s", page.ErrBadStatus, target)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return err
	}
	f.current = target
	f.doc = doc
	return nil
}

func (f *fakePage) WaitFor(_ context.Context, selector string, _ time.Duration) bool {
	return f.doc != nil && f.doc.Find(selector).Length() > 0
}

func (f *fakePage) Find(selector string) *goquery.Selection {
	if f.doc == nil {
		return &goquery.Selection{}
	}
	return f.doc.Find(selector)
}

func (f *fakePage) Click(ctx context.Context, selector string) bool {
	if f.doc == nil {
		return false
	}
	sel := f.doc.Find(selector).First()
	if sel.Length() == 0 {
		return false
	}
	href, ok := sel.Attr("href")
	if !ok || href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	return f.Navigate(ctx, f.resolve(href)) == nil
}

func (f *fakePage) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	base, err := url.Parse(f.current)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func (f *fakePage) URL() string { return f.current }

func (f *fakePage) Close() error { return nil }
