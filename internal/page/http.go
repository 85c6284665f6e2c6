package page

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// HTTPFactory builds HTTP-backed pages sharing one client.
type HTTPFactory struct {
	client   *http.Client
	logger   *slog.Logger
	attempts int
	backoff  time.Duration
}

// Options configures the HTTP page client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Attempts  int
	Backoff   time.Duration
}

// NewHTTPFactory builds a factory whose client carries a cookie jar, a
// browser user agent and the cloudflare bypass transport, since most
// scanlator sites sit behind it.
func NewHTTPFactory(opts Options, logger *slog.Logger) *HTTPFactory {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.Backoff == 0 {
		opts.Backoff = 500 * time.Millisecond
	}

	jar, _ := cookiejar.New(nil)

	client := &http.Client{
		Timeout: opts.Timeout,
		Jar:     jar,
		Transport: userAgentTransport{
			base: cloudflarebp.AddCloudFlareByPass(http.DefaultTransport),
			ua:   opts.UserAgent,
		},
	}

	return &HTTPFactory{
		client:   client,
		logger:   logger.With("component", "page"),
		attempts: opts.Attempts,
		backoff:  opts.Backoff,
	}
}

func (f *HTTPFactory) NewPage(ctx context.Context) (Page, error) {
	return &HTTPPage{
		client:   f.client,
		logger:   f.logger,
		attempts: f.attempts,
		backoff:  f.backoff,
	}, nil
}

type userAgentTransport struct {
	base http.RoundTripper
	ua   string
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.ua)
	}
	return t.base.RoundTrip(req)
}

// HTTPPage implements Page over plain HTTP fetches. The fetched document is
// static, so WaitFor is a presence check on the parsed DOM and Click only
// works for link-style controls.
type HTTPPage struct {
	client   *http.Client
	logger   *slog.Logger
	attempts int
	backoff  time.Duration

	current string
	doc     *goquery.Document
}

func (p *HTTPPage) Navigate(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	resp, err := p.doWithRetry(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, target)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: parse document: %v", ErrNavigation, err)
	}

	p.current = target
	p.doc = doc
	p.logger.Debug("page loaded", "url", target, "status", resp.StatusCode)
	return nil
}

// doWithRetry retries transport errors and 5xx responses with linear backoff.
func (p *HTTPPage) doWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for i := 1; i <= p.attempts; i++ {
		resp, err = p.client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if i == p.attempts {
			break
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(p.backoff * time.Duration(i)):
		}
	}

	if err == nil && resp != nil {
		return resp, nil
	}
	return nil, err
}

func (p *HTTPPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) bool {
	if p.doc == nil {
		return false
	}
	// A static fetch has everything it will ever have; no polling needed.
	return p.doc.Find(selector).Length() > 0
}

func (p *HTTPPage) Find(selector string) *goquery.Selection {
	if p.doc == nil {
		return &goquery.Selection{}
	}
	return p.doc.Find(selector)
}

func (p *HTTPPage) Click(ctx context.Context, selector string) bool {
	if p.doc == nil {
		return false
	}

	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return false
	}

	href, ok := sel.Attr("href")
	if !ok || href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		p.logger.Debug("click target is not a followable link", "selector", selector)
		return false
	}

	if err := p.Navigate(ctx, p.resolve(href)); err != nil {
		p.logger.Debug("click navigation failed", "selector", selector, "error", err)
		return false
	}
	return true
}

func (p *HTTPPage) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	base, err := url.Parse(p.current)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func (p *HTTPPage) URL() string { return p.current }

func (p *HTTPPage) Close() error {
	p.doc = nil
	p.current = ""
	return nil
}
