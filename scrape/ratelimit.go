package scrape

import (
	"context"
	"sync"
	"time"

	"github.com/fletchka/harvest"
	"golang.org/x/time/rate"
)

var _ harvest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain politeness delays using token buckets.
// Each domain gets its own limiter with a burst of 1, so concurrent
// scrapes of different sites proceed independently while requests within
// one site are spaced out.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewDomainLimiter creates a new DomainLimiter.
func NewDomainLimiter() *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the rate limit allows a request to the domain. The
// first caller for a domain fixes its delay; sources pointing at the same
// domain share one budget.
func (d *DomainLimiter) Wait(ctx context.Context, domain string, delay time.Duration) error {
	if delay <= 0 {
		delay = harvest.DefaultDelay
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
