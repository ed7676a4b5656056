package harvest

import "context"

// Link discovery provenance labels. Used only for tie-breaking and
// debugging; never stored in output.
const (
	SourcePattern     = "pattern"     // fixed listing-container selectors
	SourceExhaustive  = "exhaustive"  // every anchor, filtered by URL and context
	SourceCard        = "card"        // clickable article-preview blocks
	SourceHeading     = "heading"     // heading text with a nearby or constructed URL
	SourceStructured  = "structured"  // multi-selector scan with combined filtering
	SourceRendered    = "rendered"    // anchors present after JavaScript rendering
	SourceConstructed = "constructed" // URL guessed from title text, unverified
	SourceClick       = "click"       // real navigation target observed via click
	SourceFeed        = "feed"        // RSS/Atom feed entry
	SourceSitemap     = "sitemap"     // sitemap.xml entry
)

// DiscoveredLink is a candidate article URL plus provenance.
type DiscoveredLink struct {
	URL    string // absolute, normalized against the page base
	Text   string // anchor text, may be empty for constructed URLs
	Source string // which heuristic produced it
}

// Constructed reports whether the URL was guessed from title text rather
// than read from a real anchor. Constructed URLs are candidates requiring
// verification by fetch; they may 404.
func (l DiscoveredLink) Constructed() bool {
	return l.Source == SourceConstructed
}

// LinkDiscoverer finds links that are probably articles on a listing page.
// Results are deduplicated by normalized absolute URL.
type LinkDiscoverer interface {
	FindArticleLinks(html string, baseURL string) ([]DiscoveredLink, error)

	// FindRenderedLinks applies the relaxed heuristics appropriate for
	// browser-rendered HTML, where anchor structure is often synthetic.
	FindRenderedLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// ClickDiscoverer recovers real article URLs from single-page applications
// that render clickable items without anchor links, by driving a browser to
// click them and observing the resulting navigation.
type ClickDiscoverer interface {
	// Discover returns at most max links. Individual click failures are
	// skipped; only a total inability to load the listing page is an error.
	Discover(ctx context.Context, baseURL string, max int) ([]DiscoveredLink, error)

	// Close releases browser resources.
	Close() error
}

// FeedDiscoverer finds article URLs advertised through RSS/Atom feeds.
type FeedDiscoverer interface {
	FindFeedLinks(ctx context.Context, html string, baseURL string) ([]DiscoveredLink, error)
}

// SitemapService discovers URLs from a site's sitemap.xml, resolving
// sitemap indexes recursively.
type SitemapService interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
