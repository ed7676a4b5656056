// Package feed discovers article links through RSS and Atom feeds.
package feed

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fletchka/harvest"
	"github.com/mmcdole/gofeed"
)

// Ensure Discoverer implements harvest.FeedDiscoverer at compile time.
var _ harvest.FeedDiscoverer = (*Discoverer)(nil)

// commonFeedPaths are probed relative to the listing URL when the page
// does not advertise a feed.
var commonFeedPaths = []string{
	"/feed", "/rss", "/rss.xml", "/atom.xml", "/feed.xml", "/index.xml",
}

// maxFeedsProbed bounds the number of candidate feeds fetched per page.
const maxFeedsProbed = 3

// Discoverer finds feeds advertised by a page or living at conventional
// paths and extracts their entry links. gofeed detects and normalizes
// both RSS and Atom.
type Discoverer struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithLogger sets the logger used for per-feed debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer(opts ...Option) *Discoverer {
	d := &Discoverer{
		parser: gofeed.NewParser(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FindFeedLinks returns the entry links of every feed reachable from the
// page: advertised <link> elements first, then conventional feed paths.
// Unreachable or unparsable feeds are skipped, never fatal.
func (d *Discoverer) FindFeedLinks(ctx context.Context, pageHTML string, baseURL string) ([]harvest.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid base URL %q", baseURL)
	}

	candidates := d.feedCandidates(pageHTML, base)

	seen := make(map[string]bool)
	var links []harvest.DiscoveredLink
	probed := 0
	for _, feedURL := range candidates {
		if probed >= maxFeedsProbed {
			break
		}
		probed++

		parsed, err := d.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			d.logger.Debug("feed unreachable", "feed", feedURL, "error", err)
			continue
		}
		for _, item := range parsed.Items {
			link := strings.TrimSpace(item.Link)
			if link == "" || seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, harvest.DiscoveredLink{
				URL:    link,
				Text:   strings.TrimSpace(item.Title),
				Source: harvest.SourceFeed,
			})
		}
	}

	d.logger.Debug("feed discovery complete", "base", baseURL, "links", len(links))
	return links, nil
}

// feedCandidates collects feed URLs advertised by the page plus the
// conventional paths, deduplicated in priority order.
func (d *Discoverer) feedCandidates(pageHTML string, base *url.URL) []string {
	seen := make(map[string]bool)
	var candidates []string
	add := func(raw string) {
		ref, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		u := base.ResolveReference(ref).String()
		if !seen[u] {
			seen[u] = true
			candidates = append(candidates, u)
		}
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML)); err == nil {
		doc.Find(`link[type="application/rss+xml"], link[type="application/atom+xml"]`).Each(func(_ int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok {
				add(href)
			}
		})
	}
	for _, path := range commonFeedPaths {
		add(path)
	}
	return candidates
}
