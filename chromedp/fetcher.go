// Package chromedp provides a Chrome DevTools Protocol implementation of
// harvest.Fetcher. It is the fallback rendering backend when the rod
// browser cannot be launched.
package chromedp

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/fletchka/harvest"
)

// DefaultFetchTimeout bounds a single page render, including browser
// startup. Higher than the HTTP timeout because every fetch launches a
// fresh browser context.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher renders pages through chromedp. Each fetch runs in its own
// browser context, traded for startup cost in exchange for isolation:
// a crashed render never poisons the next one.
type Fetcher struct {
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-fetch timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL in a fresh browser context and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	chromeOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
	)
	if f.userAgent != "" {
		chromeOpts = append(chromeOpts, chromedp.UserAgent(f.userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromeOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx, chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2 * time.Second),
		chromedp.OuterHTML("html", &html),
	})
	if err != nil {
		return "", harvest.Errorf(harvest.EUNAVAILABLE, "rendering %s: %v", url, err)
	}

	return html, nil
}

// Close releases resources. Browser contexts are per-fetch, so there is
// nothing to clean up.
func (f *Fetcher) Close() error {
	return nil
}
