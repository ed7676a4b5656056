package rod

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/fletchka/harvest"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Click discovery timing. Rendering and animation make SPA listings slow
// to settle, so every interaction gets a generous wait.
const (
	clickPageLoadTimeout = 10 * time.Second
	clickNavigationWait  = 5 * time.Second
	clickScrollSettle    = 2 * time.Second
	clickTitleMinLength  = 15
	maxScrollRounds      = 5
)

// clickableSites are platforms known to render listing cards without
// anchor links, where clicking is the only way to learn the real URL.
var clickableSites = []string{
	"quill.co/blog", "substack.com", "medium.com", "ghost.org", "notion.site",
}

// excludedClickTitles are navigation labels that show up inside clickable
// containers but never lead to articles.
var excludedClickTitles = map[string]bool{
	"Blog": true, "Product": true, "Docs": true, "Home": true,
}

// SupportsClickDiscovery reports whether a URL belongs to a platform
// where click discovery is worth the cost of driving a browser.
func SupportsClickDiscovery(url string) bool {
	for _, site := range clickableSites {
		if strings.Contains(url, site) {
			return true
		}
	}
	return false
}

// Ensure ClickDiscoverer implements harvest.ClickDiscoverer.
var _ harvest.ClickDiscoverer = (*ClickDiscoverer)(nil)

// ClickDiscoverer recovers article URLs from SPA listings by clicking
// rendered cards and observing where the browser navigates.
type ClickDiscoverer struct {
	manager     *BrowserManager
	ownsManager bool
	logger      *slog.Logger
}

// ClickOption configures a ClickDiscoverer.
type ClickOption func(*ClickDiscoverer)

// WithClickLogger sets the logger used for per-click debug output.
func WithClickLogger(logger *slog.Logger) ClickOption {
	return func(d *ClickDiscoverer) {
		d.logger = logger
	}
}

// WithClickManager shares an existing BrowserManager. The caller keeps
// ownership and must close it.
func WithClickManager(bm *BrowserManager) ClickOption {
	return func(d *ClickDiscoverer) {
		d.manager = bm
		d.ownsManager = false
	}
}

// NewClickDiscoverer creates a new ClickDiscoverer. Unless a manager is
// shared, a headless Chrome browser is launched and owned by it.
func NewClickDiscoverer(opts ...ClickOption) (*ClickDiscoverer, error) {
	d := &ClickDiscoverer{
		logger:      slog.New(slog.DiscardHandler),
		ownsManager: true,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.manager == nil {
		bm, err := NewBrowserManager()
		if err != nil {
			return nil, err
		}
		d.manager = bm
	}

	return d, nil
}

// Discover loads the listing, scrolls it out, and clicks each candidate
// card to learn its real URL. Returns at most max links. Individual click
// failures are skipped; only a total inability to load the listing page
// is an error. Returns nil immediately for unsupported sites.
func (d *ClickDiscoverer) Discover(ctx context.Context, baseURL string, max int) ([]harvest.DiscoveredLink, error) {
	if !SupportsClickDiscovery(baseURL) {
		return nil, nil
	}

	page, err := d.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "opening browser page: %v", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(baseURL); err != nil {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "loading listing %s: %v", baseURL, err)
	}
	if _, err := page.Timeout(clickPageLoadTimeout).Element("body"); err != nil {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "listing %s never rendered a body", baseURL)
	}
	if err := sleepCtx(ctx, DefaultSettleDelay); err != nil {
		return nil, err
	}
	if err := d.scrollOut(ctx, page); err != nil {
		return nil, err
	}

	titles, err := d.collectTitles(page)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("click candidates collected", "base", baseURL, "candidates", len(titles))

	var links []harvest.DiscoveredLink
	for _, title := range titles {
		if len(links) >= max {
			break
		}
		if err := ctx.Err(); err != nil {
			return links, err
		}

		link, ok := d.clickThrough(ctx, page, baseURL, title)
		if !ok {
			continue
		}
		links = append(links, link)
	}

	d.manager.IncrementPageCount()
	return links, nil
}

// Close releases browser resources if the discoverer owns them.
func (d *ClickDiscoverer) Close() error {
	if !d.ownsManager {
		return nil
	}
	return d.manager.Close()
}

// scrollOut scrolls to the bottom repeatedly until the page height stops
// growing, forcing lazy-loaded cards to render.
func (d *ClickDiscoverer) scrollOut(ctx context.Context, page *rod.Page) error {
	lastHeight := -1
	for i := 0; i < maxScrollRounds; i++ {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return nil
		}
		if err := sleepCtx(ctx, clickScrollSettle); err != nil {
			return err
		}
		res, err := page.Eval(`() => document.body.scrollHeight`)
		if err != nil {
			return nil
		}
		height := res.Value.Int()
		if height == lastHeight {
			break
		}
		lastHeight = height
	}
	return nil
}

// collectTitles gathers headline text from clickable containers, dropping
// short text and navigation labels.
func (d *ClickDiscoverer) collectTitles(page *rod.Page) ([]string, error) {
	els, err := page.Elements(`[style*="cursor: pointer"] h1, [style*="cursor:pointer"] h1`)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var titles []string
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		title := strings.TrimSpace(text)
		if len(title) < clickTitleMinLength || excludedClickTitles[title] || seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
	}
	return titles, nil
}

// clickThrough re-locates the card for a title, clicks it, and waits for
// the browser to navigate somewhere new. The page is returned to the
// listing afterward regardless of outcome.
func (d *ClickDiscoverer) clickThrough(ctx context.Context, page *rod.Page, baseURL, title string) (harvest.DiscoveredLink, bool) {
	el, err := page.Timeout(clickPageLoadTimeout).ElementR("h1", "^"+regexp.QuoteMeta(title)+"$")
	if err != nil {
		d.logger.Debug("card vanished before click", "title", title)
		return harvest.DiscoveredLink{}, false
	}

	startURL := currentURL(page)
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		d.logger.Debug("click failed", "title", title, "error", err)
		return harvest.DiscoveredLink{}, false
	}

	newURL, changed := d.waitForNavigation(ctx, page, startURL)

	// Return to the listing before deciding, so a failed wait still
	// leaves the page usable for the next candidate.
	d.returnToListing(ctx, page, baseURL)

	if !changed || newURL == baseURL {
		d.logger.Debug("click produced no navigation", "title", title)
		return harvest.DiscoveredLink{}, false
	}

	return harvest.DiscoveredLink{URL: newURL, Text: title, Source: harvest.SourceClick}, true
}

// waitForNavigation polls the page URL until it changes or the wait
// budget runs out.
func (d *ClickDiscoverer) waitForNavigation(ctx context.Context, page *rod.Page, startURL string) (string, bool) {
	deadline := time.Now().Add(clickNavigationWait)
	for time.Now().Before(deadline) {
		if err := sleepCtx(ctx, 100*time.Millisecond); err != nil {
			return "", false
		}
		if u := currentURL(page); u != "" && u != startURL {
			return u, true
		}
	}
	return "", false
}

// returnToListing navigates back and restores scroll position.
func (d *ClickDiscoverer) returnToListing(ctx context.Context, page *rod.Page, baseURL string) {
	if err := page.NavigateBack(); err != nil {
		_ = page.Navigate(baseURL)
	}
	_ = page.WaitLoad()
	_ = sleepCtx(ctx, time.Second)
	_, _ = page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	_ = sleepCtx(ctx, time.Second)
}

// currentURL returns the page's URL, or "" if the target is gone.
func currentURL(page *rod.Page) string {
	info, err := page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}
