// Package page provides the browser-page capability that site adapters drive:
// load a URL, wait for a selector, run extraction queries against the loaded
// document. The production implementation fetches over HTTP and parses with
// goquery; adapters never touch the transport directly.
package page

import (
	"context"
	"errors"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrBadStatus reports an HTTP-error response (status >= 400).
	ErrBadStatus = errors.New("page: bad response status")
	// ErrNavigation reports a transport-level failure (timeout, DNS, refused).
	ErrNavigation = errors.New("page: navigation failed")
)

// Page is one live page instance. A Page is bound to a single adapter at a
// time and is not safe for concurrent use.
type Page interface {
	// Navigate loads the given URL. HTTP-error statuses return ErrBadStatus,
	// transport failures return ErrNavigation (both possibly wrapped).
	Navigate(ctx context.Context, url string) error

	// WaitFor waits until the selector matches in the loaded document or the
	// timeout elapses. It reports whether the selector appeared.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) bool

	// Find runs a selector query against the loaded document. The document is
	// empty before the first successful Navigate.
	Find(selector string) *goquery.Selection

	// Click activates the first element matching the selector, when the
	// implementation can (for link-style controls this follows the href). It
	// reports whether anything happened.
	Click(ctx context.Context, selector string) bool

	// URL returns the currently loaded URL, or "" before navigation.
	URL() string

	Close() error
}

// Factory creates pages. The tracker acquires one page per job and hands it
// to each adapter sequentially.
type Factory interface {
	NewPage(ctx context.Context) (Page, error)
}
