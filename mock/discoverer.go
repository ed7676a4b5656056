package mock

import (
	"context"

	"github.com/fletchka/harvest"
)

var _ harvest.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer is a mock implementation of harvest.LinkDiscoverer.
type LinkDiscoverer struct {
	FindArticleLinksFn  func(html string, baseURL string) ([]harvest.DiscoveredLink, error)
	FindRenderedLinksFn func(html string, baseURL string) ([]harvest.DiscoveredLink, error)
}

func (d *LinkDiscoverer) FindArticleLinks(html string, baseURL string) ([]harvest.DiscoveredLink, error) {
	return d.FindArticleLinksFn(html, baseURL)
}

func (d *LinkDiscoverer) FindRenderedLinks(html string, baseURL string) ([]harvest.DiscoveredLink, error) {
	return d.FindRenderedLinksFn(html, baseURL)
}

var _ harvest.ClickDiscoverer = (*ClickDiscoverer)(nil)

// ClickDiscoverer is a mock implementation of harvest.ClickDiscoverer.
type ClickDiscoverer struct {
	DiscoverFn func(ctx context.Context, baseURL string, max int) ([]harvest.DiscoveredLink, error)
	CloseFn    func() error
}

func (d *ClickDiscoverer) Discover(ctx context.Context, baseURL string, max int) ([]harvest.DiscoveredLink, error) {
	return d.DiscoverFn(ctx, baseURL, max)
}

func (d *ClickDiscoverer) Close() error {
	if d.CloseFn == nil {
		return nil
	}
	return d.CloseFn()
}

var _ harvest.FeedDiscoverer = (*FeedDiscoverer)(nil)

// FeedDiscoverer is a mock implementation of harvest.FeedDiscoverer.
type FeedDiscoverer struct {
	FindFeedLinksFn func(ctx context.Context, html string, baseURL string) ([]harvest.DiscoveredLink, error)
}

func (d *FeedDiscoverer) FindFeedLinks(ctx context.Context, html string, baseURL string) ([]harvest.DiscoveredLink, error) {
	return d.FindFeedLinksFn(ctx, html, baseURL)
}

var _ harvest.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of harvest.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
