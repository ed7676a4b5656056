package harvest

import (
	"context"
	"time"
)

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, or plain HTTP for static sites.
type Fetcher interface {
	// Fetch navigates to the URL, waits for content to render, and returns
	// the final HTML. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter enforces politeness delays per domain. Concurrent scrapes
// of different domains proceed independently; requests within one domain
// are spaced by at least the given delay.
type DomainLimiter interface {
	// Wait blocks until the domain's limiter allows a request. Returns an
	// error only if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string, delay time.Duration) error
}
