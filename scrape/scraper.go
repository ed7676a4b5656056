// Package scrape orchestrates scraping runs. It coordinates architecture
// classification, link discovery, fetching, extraction, and PDF chunking
// across a list of configured sources.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// defaultConcurrency bounds how many sources are scraped at once.
	defaultConcurrency = 3

	// seenExpectedURLs sizes the per-run Bloom filter.
	seenExpectedURLs = 10000
	// seenFalsePositiveRate is the acceptable skip rate from filter
	// collisions.
	seenFalsePositiveRate = 0.01

	// placeholderLimit caps the number of preview items emitted for a
	// JavaScript listing that no rendering backend could capture.
	placeholderLimit = 20
)

// Scraper orchestrates scraping runs. Dependencies are exported fields;
// optional ones may be nil and the corresponding capability is skipped.
type Scraper struct {
	Fetcher          harvest.Fetcher // static HTTP
	Renderer         harvest.Fetcher // browser, for JS-heavy pages
	FallbackRenderer harvest.Fetcher // second browser backend

	Classifier harvest.Classifier
	Links      harvest.LinkDiscoverer
	Clicker    harvest.ClickDiscoverer
	Feeds      harvest.FeedDiscoverer
	Sitemaps   harvest.SitemapService
	Extractor  harvest.Extractor

	PDFText    harvest.TextExtractor
	NewChunker func(size, overlap int) harvest.Chunker

	Items       harvest.ItemService
	RateLimiter harvest.DomainLimiter

	// LikelyArticle filters sitemap URLs before they join discovery.
	// When nil, sitemap supplementing is skipped.
	LikelyArticle func(url string) bool

	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration
}

// SourceResult holds the outcome of scraping a single source.
type SourceResult struct {
	Source   harvest.Source
	Items    []harvest.ContentItem
	Skipped  int  // links skipped as already seen or bad guesses
	Failed   int  // links fetched but yielding no acceptable content
	Degraded bool // items are previews, not full content
	Err      error
}

// Result holds the outcome of a run across all sources.
type Result struct {
	RunID   string
	Export  *harvest.Export
	Sources []SourceResult
}

// Run scrapes every source and assembles the export. Sources are scraped
// concurrently, items within a source sequentially. A failing source
// contributes an empty item list and its failure reason; it never aborts
// the run. Run returns an error only when the context is canceled or a
// source descriptor is invalid.
func (s *Scraper) Run(ctx context.Context, teamID string, sources []harvest.Source, progress harvest.ProgressFunc) (*Result, error) {
	srcs := make([]harvest.Source, len(sources))
	for i := range sources {
		src := sources[i].WithDefaults()
		if err := src.Validate(); err != nil {
			return nil, err
		}
		srcs[i] = src
	}
	if progress == nil {
		progress = func(current, total int, url string) {}
	}

	runID := uuid.NewString()
	seen := bloom.NewFilter(seenExpectedURLs, seenFalsePositiveRate)

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make([]SourceResult, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range srcs {
		g.Go(func() error {
			results[i] = s.scrapeSource(gctx, srcs[i], seen, progress)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	export := &harvest.Export{TeamID: teamID, Items: []harvest.ContentItem{}}
	for _, res := range results {
		export.Items = append(export.Items, res.Items...)
	}

	if s.Items != nil {
		for i := range export.Items {
			if err := s.Items.CreateItem(ctx, runID, &export.Items[i]); err != nil {
				s.logger().Warn("persisting item failed", "run", runID, "url", export.Items[i].SourceURL, "error", err)
			}
		}
	}

	s.logger().Info("run complete",
		"run", runID,
		"sources", len(srcs),
		"items", len(export.Items),
	)
	return &Result{RunID: runID, Export: export, Sources: results}, nil
}

// scrapeSource dispatches on the source type.
func (s *Scraper) scrapeSource(ctx context.Context, src harvest.Source, seen *bloom.Filter, progress harvest.ProgressFunc) SourceResult {
	switch src.Type {
	case harvest.SourceTypePDF:
		return s.scrapePDF(ctx, src, progress)
	default:
		return s.scrapeWeb(ctx, src, seen, progress)
	}
}

// scrapePDF extracts and chunks one PDF document.
func (s *Scraper) scrapePDF(ctx context.Context, src harvest.Source, progress harvest.ProgressFunc) SourceResult {
	res := SourceResult{Source: src}
	if s.PDFText == nil || s.NewChunker == nil {
		res.Err = harvest.Errorf(harvest.EUNAVAILABLE, "no PDF backend configured")
		return res
	}

	path := strings.TrimPrefix(src.URL, "file://")
	text, err := s.PDFText.ExtractText(path)
	if err != nil {
		res.Err = err
		return res
	}

	title := src.Title
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	chunks := s.NewChunker(src.ChunkSize, src.ChunkOverlap).Chunk(text, title)
	total := len(chunks)
	for i, chunk := range chunks {
		progress(i+1, total, src.URL)
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}

		item := chunk.Item(src.URL, src.Author)
		if err := item.Validate(); err != nil {
			s.logger().Debug("dropping undersized chunk", "path", path, "chunk", chunk.ChunkIndex, "error", err)
			res.Failed++
			continue
		}
		res.Items = append(res.Items, item)
	}

	s.logger().Info("pdf scraped", "path", path, "chunks", total, "items", len(res.Items))
	return res
}

// scrapeWeb discovers article links on a listing page and extracts each.
func (s *Scraper) scrapeWeb(ctx context.Context, src harvest.Source, seen *bloom.Filter, progress harvest.ProgressFunc) SourceResult {
	res := SourceResult{Source: src}

	if err := s.wait(ctx, src.URL, src.Delay); err != nil {
		res.Err = err
		return res
	}
	listing, err := FetchWithRetryDelays(ctx, src.URL, s.Fetcher.Fetch, s.logf, s.retryDelays())
	if err != nil {
		res.Err = harvest.Errorf(harvest.EUNAVAILABLE, "listing %s unreachable: %v", src.URL, err)
		return res
	}

	profile := s.Classifier.Classify(listing, src.URL)
	s.logger().Debug("listing classified",
		"url", src.URL,
		"strategy", profile.Strategy,
		"density", profile.ContentDensity,
		"frameworks", profile.Frameworks,
	)

	links, degraded := s.discoverLinks(ctx, src, listing, profile)
	if len(links) > src.MaxArticles {
		links = links[:src.MaxArticles]
	}
	if degraded {
		return s.placeholderItems(ctx, src, links, progress)
	}

	total := len(links)
	for i, link := range links {
		progress(i+1, total, link.URL)
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		if seen.Seen(link.URL) {
			res.Skipped++
			continue
		}

		item, ok := s.scrapeArticle(ctx, src, profile, link)
		if !ok {
			if link.Constructed() {
				res.Skipped++
			} else {
				res.Failed++
			}
			continue
		}
		res.Items = append(res.Items, item)
	}

	s.logger().Info("source scraped",
		"url", src.URL,
		"links", total,
		"items", len(res.Items),
		"skipped", res.Skipped,
		"failed", res.Failed,
	)
	return res
}

// scrapeArticle fetches one article and turns it into an item. Returns
// false when the link yields nothing worth keeping.
func (s *Scraper) scrapeArticle(ctx context.Context, src harvest.Source, profile harvest.ArchitectureProfile, link harvest.DiscoveredLink) (harvest.ContentItem, bool) {
	if err := s.wait(ctx, link.URL, src.Delay); err != nil {
		return harvest.ContentItem{}, false
	}

	fetcher := s.Fetcher
	if profile.NeedsBrowserRendering() && s.Renderer != nil {
		fetcher = s.Renderer
	}

	var html string
	var err error
	if link.Constructed() {
		// A guessed URL that 404s is expected, not worth retrying or
		// reporting above debug level.
		html, err = fetcher.Fetch(ctx, link.URL)
		if err != nil {
			s.logger().Debug("constructed url failed", "url", link.URL, "error", err)
			return harvest.ContentItem{}, false
		}
	} else {
		html, err = FetchWithRetryDelays(ctx, link.URL, fetcher.Fetch, s.logf, s.retryDelays())
		if err != nil {
			s.logger().Warn("article fetch failed", "url", link.URL, "error", err)
			return harvest.ContentItem{}, false
		}
	}

	content, err := s.Extractor.Content(html)
	if err != nil {
		s.logger().Debug("no content extracted", "url", link.URL, "error", err)
		return harvest.ContentItem{}, false
	}

	title := s.Extractor.Title(html)
	if title == "Untitled" && strings.TrimSpace(link.Text) != "" {
		title = strings.TrimSpace(link.Text)
	}

	item := harvest.ContentItem{
		Title:       title,
		Content:     content,
		ContentType: harvest.DetectContentType(link.URL, title, content),
		SourceURL:   link.URL,
		Author:      s.Extractor.Author(html),
	}
	if err := item.Validate(); err != nil {
		s.logger().Debug("dropping invalid item", "url", link.URL, "error", err)
		return harvest.ContentItem{}, false
	}

	s.logger().Debug("item scraped",
		"url", link.URL,
		"type", item.ContentType,
		"bytes", len(item.Content),
		"hash", contentHash(item.Content),
	)
	return item, true
}

// discoverLinks runs the discovery ladder for a listing page. JS-heavy
// pages try click discovery first where supported, then browser
// rendering; everything else goes through the static DOM passes
// supplemented by feeds and sitemaps. degraded is true when the page
// needs rendering but no backend could capture it, so only placeholder
// items are possible.
func (s *Scraper) discoverLinks(ctx context.Context, src harvest.Source, listing string, profile harvest.ArchitectureProfile) (links []harvest.DiscoveredLink, degraded bool) {
	if profile.NeedsBrowserRendering() {
		if s.Clicker != nil {
			clicks, err := s.Clicker.Discover(ctx, src.URL, src.MaxArticles)
			if err != nil {
				s.logger().Warn("click discovery failed", "url", src.URL, "error", err)
			}
			if len(clicks) > 0 {
				s.logger().Debug("click discovery succeeded", "url", src.URL, "links", len(clicks))
				return clicks, false
			}
		}

		rendered, err := s.renderListing(ctx, src.URL)
		if err == nil {
			if found, derr := s.Links.FindRenderedLinks(rendered, src.URL); derr == nil && len(found) > 0 {
				return found, false
			}
		} else {
			s.logger().Warn("listing rendering unavailable", "url", src.URL, "error", err)
			found, _ := s.Links.FindArticleLinks(listing, src.URL)
			return found, true
		}
	}

	links, err := s.Links.FindArticleLinks(listing, src.URL)
	if err != nil {
		s.logger().Warn("link discovery failed", "url", src.URL, "error", err)
	}
	if len(links) < src.MaxArticles {
		links = s.supplementLinks(ctx, src, listing, links)
	}
	return links, false
}

// supplementLinks adds feed and sitemap URLs that DOM discovery missed.
func (s *Scraper) supplementLinks(ctx context.Context, src harvest.Source, listing string, links []harvest.DiscoveredLink) []harvest.DiscoveredLink {
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		seen[l.URL] = true
	}
	add := func(l harvest.DiscoveredLink) {
		if l.URL != "" && !seen[l.URL] {
			seen[l.URL] = true
			links = append(links, l)
		}
	}

	if s.Feeds != nil {
		feedLinks, err := s.Feeds.FindFeedLinks(ctx, listing, src.URL)
		if err != nil {
			s.logger().Debug("feed discovery failed", "url", src.URL, "error", err)
		}
		for _, l := range feedLinks {
			add(l)
		}
	}

	if s.Sitemaps != nil && s.LikelyArticle != nil {
		urls, err := s.Sitemaps.DiscoverURLs(ctx, src.URL)
		if err != nil {
			s.logger().Debug("sitemap discovery failed", "url", src.URL, "error", err)
		}
		for _, u := range urls {
			if s.LikelyArticle(u) {
				add(harvest.DiscoveredLink{URL: u, Source: harvest.SourceSitemap})
			}
		}
	}
	return links
}

// renderListing tries each rendering backend in order.
func (s *Scraper) renderListing(ctx context.Context, url string) (string, error) {
	var lastErr error
	for _, renderer := range []harvest.Fetcher{s.Renderer, s.FallbackRenderer} {
		if renderer == nil {
			continue
		}
		html, err := FetchWithRetryDelays(ctx, url, renderer.Fetch, s.logf, s.retryDelays())
		if err == nil {
			return html, nil
		}
		lastErr = err
		s.logger().Warn("rendering backend failed", "url", url, "error", err)
	}
	if lastErr == nil {
		lastErr = harvest.Errorf(harvest.EUNAVAILABLE, "no rendering backend configured")
	}
	return "", lastErr
}

// placeholderItems emits preview items for a JavaScript listing that no
// backend could render. Titles come from discovery; bodies say plainly
// that the full article was out of reach.
func (s *Scraper) placeholderItems(ctx context.Context, src harvest.Source, links []harvest.DiscoveredLink, progress harvest.ProgressFunc) SourceResult {
	res := SourceResult{Source: src, Degraded: true}

	if len(links) > placeholderLimit {
		links = links[:placeholderLimit]
	}
	total := len(links)
	for i, link := range links {
		progress(i+1, total, link.URL)
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}

		title := strings.TrimSpace(link.Text)
		if title == "" {
			res.Skipped++
			continue
		}
		item := harvest.ContentItem{
			Title: title,
			Content: fmt.Sprintf(
				"Article preview: %s.\n\nThe full article is published at %s, but the listing requires JavaScript rendering and no browser backend was available during this run, so only the preview could be captured.",
				title, link.URL,
			),
			ContentType: harvest.ContentTypeBlog,
			SourceURL:   link.URL,
		}
		if err := item.Validate(); err != nil {
			res.Skipped++
			continue
		}
		res.Items = append(res.Items, item)
	}

	s.logger().Info("source degraded to previews", "url", src.URL, "items", len(res.Items))
	return res
}

// wait applies the politeness delay for the URL's domain.
func (s *Scraper) wait(ctx context.Context, rawURL string, delay time.Duration) error {
	if s.RateLimiter == nil {
		return ctx.Err()
	}
	domain := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		domain = u.Hostname()
	}
	return s.RateLimiter.Wait(ctx, domain, delay)
}

func (s *Scraper) retryDelays() []time.Duration {
	if s.RetryDelays != nil {
		return s.RetryDelays
	}
	return DefaultRetryDelays()
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// logf adapts the structured logger to the retry helper's printf shape.
func (s *Scraper) logf(format string, args ...any) {
	s.logger().Debug(fmt.Sprintf(format, args...))
}

// contentHash fingerprints item content for log correlation.
func contentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
