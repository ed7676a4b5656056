// Package rod provides Chrome-backed implementations of harvest.Fetcher
// and harvest.ClickDiscoverer for JavaScript-heavy sites.
package rod

import (
	"context"
	"time"

	"github.com/fletchka/harvest"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
// Kept consistent with http.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultSettleDelay is how long a page is left alone after load so
// client-side frameworks can finish painting.
const DefaultSettleDelay = 3 * time.Second

// Ensure Fetcher implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	ownsManager bool
	timeout     time.Duration
	settle      time.Duration
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

// WithSettleDelay sets the post-load settle delay.
// Defaults to DefaultSettleDelay if not specified.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithManager shares an existing BrowserManager instead of launching a
// dedicated browser. The caller keeps ownership and must close it.
func WithManager(bm *BrowserManager) Option {
	return func(f *Fetcher) {
		f.manager = bm
		f.ownsManager = false
	}
}

// NewFetcher creates a new Fetcher. Unless a manager is shared via
// WithManager, a headless Chrome browser is launched and owned by the
// Fetcher; Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		settle:      DefaultSettleDelay,
		ownsManager: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.manager == nil {
		bm, err := NewBrowserManager()
		if err != nil {
			return nil, err
		}
		f.manager = bm
	}

	return f, nil
}

// Fetch navigates to the URL, waits for the page to render, and returns
// the resulting HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout+f.settle)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := sleepCtx(ctx, f.settle); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources if the Fetcher owns them.
func (f *Fetcher) Close() error {
	if !f.ownsManager {
		return nil
	}
	return f.manager.Close()
}

// sleepCtx sleeps for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
