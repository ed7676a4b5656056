package goquery

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fletchka/harvest"
)

// Ensure Discoverer implements harvest.LinkDiscoverer at compile time.
var _ harvest.LinkDiscoverer = (*Discoverer)(nil)

// patternSelectors are anchors inside known listing-container markup.
var patternSelectors = []string{
	`a[href*="/blog/"]`, `a[href*="/post/"]`, `a[href*="/article/"]`,
	`a[href*="/20"]`,
	".post-list a", ".article-list a", ".blog-list a",
	"article a", ".entry a", ".post a",
}

// cardSelectors match clickable article-preview blocks on modern sites.
var cardSelectors = []string{
	`[style*="cursor:pointer"]`, `[style*="cursor: pointer"]`, "[onclick]",
	`[class*="hover"]`, `[class*="card"]`, `[class*="item"]`,
	`[class*="post"]`, `[class*="article"]`,
}

// headingSelectors match elements whose text may be an article title.
var headingSelectors = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	`div[class*="title"]`, `span[class*="title"]`, `p[class*="title"]`,
	`div[class*="heading"]`, `span[class*="heading"]`,
	`div[class*="headline"]`, `div[class*="name"]`,
}

// structuredSelectors scope the structured pass to content containers.
var structuredSelectors = []string{
	"article a[href]", ".post a[href]", ".entry a[href]",
	`[class*="card"] a[href]`, `[class*="list"] a[href]`, "area[href]",
}

// genericLinkText is navigation boilerplate that disqualifies an anchor in
// the structured pass.
var genericLinkText = map[string]bool{
	"read more": true, "continue reading": true, "click here": true,
	"more info": true, "learn more": true, "see more": true,
	"view more": true, "full article": true, "read full": true,
	"continue": true, "more": true, "here": true, "link": true,
}

// nonArticleLinkWords in anchor text mark booking, auth, and commerce
// links.
var nonArticleLinkWords = []string{
	"book", "demo", "call", "meeting", "schedule", "calendar", "contact",
	"about", "login", "signup", "register", "subscribe", "download",
	"pricing", "trial", "free", "buy", "purchase",
}

// articleTitleWords suggest heading text names an article.
var articleTitleWords = []string{
	"how", "why", "what", "guide", "tips", "best", "top", "review",
	"vs", "versus", "tutorial", "introduction", "understanding",
}

// Discoverer finds article links on listing pages by running several
// heuristic passes over the DOM and merging their results.
type Discoverer struct {
	logger *slog.Logger
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithDiscovererLogger sets the logger used for per-pass debug output.
func WithDiscovererLogger(logger *slog.Logger) DiscovererOption {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer(opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// linkSet accumulates links across passes, deduplicating by URL. The first
// pass to produce a URL keeps its provenance.
type linkSet struct {
	seen  map[string]bool
	links []harvest.DiscoveredLink
}

func newLinkSet() *linkSet {
	return &linkSet{seen: make(map[string]bool)}
}

func (s *linkSet) add(u, text, source string) {
	if u == "" || s.seen[u] {
		return
	}
	s.seen[u] = true
	s.links = append(s.links, harvest.DiscoveredLink{URL: u, Text: text, Source: source})
}

// FindArticleLinks runs the full discovery cascade over a listing page:
// pattern selectors, an exhaustive anchor scan, card previews, aggressive
// heading matching, and a structured multi-selector pass. Returns an
// EINVALID-coded error only when the base URL cannot be parsed.
func (d *Discoverer) FindArticleLinks(pageHTML, baseURL string) ([]harvest.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid base URL %q", baseURL)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "unparsable listing page")
	}

	set := newLinkSet()
	d.patternPass(doc, base, set)
	d.exhaustivePass(doc, base, set)
	d.cardPass(doc, base, set)
	d.headingPass(doc, base, set)
	d.structuredPass(doc, base, set)

	d.logger.Debug("link discovery complete", "base", baseURL, "links", len(set.links))
	return set.links, nil
}

// patternPass collects anchors matched by known listing selectors.
func (d *Discoverer) patternPass(doc *goquery.Document, base *url.URL, set *linkSet) {
	for _, sel := range patternSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok {
				return
			}
			u, ok := resolveURL(base, href)
			if !ok || !sameSite(base, u) {
				return
			}
			set.add(u, strings.TrimSpace(s.Text()), harvest.SourcePattern)
		})
	}
}

// exhaustivePass scans every anchor, keeping those whose URL looks like an
// article and whose surrounding context does not look navigational.
func (d *Discoverer) exhaustivePass(doc *goquery.Document, base *url.URL, set *linkSet) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, ok := resolveURL(base, href)
		if !ok || !sameSite(base, u) {
			return
		}
		if !IsLikelyArticleURL(u) {
			return
		}
		if !hasArticleContext(s) {
			return
		}
		set.add(u, strings.TrimSpace(s.Text()), harvest.SourceExhaustive)
	})
}

// cardPass treats clickable preview blocks as articles: a block with a
// heading and either a description or a date is assumed to lead to one.
// Blocks without an inner anchor get a URL constructed from the heading.
func (d *Discoverer) cardPass(doc *goquery.Document, base *url.URL, set *linkSet) {
	for _, sel := range cardSelectors {
		doc.Find(sel).Each(func(_ int, card *goquery.Selection) {
			text := strings.TrimSpace(card.Text())
			if len(text) < 50 {
				return
			}
			heading := card.Find(`h1, h2, h3, h4, h5, h6, [class*="title"]`).First()
			if heading.Length() == 0 {
				return
			}
			title := strings.TrimSpace(heading.Text())
			if title == "" {
				return
			}
			hasDescription := len(text) > len(title)+30
			if !hasDescription && !dateMentionRe.MatchString(text) {
				return
			}

			if a := card.Find("a[href]").First(); a.Length() > 0 {
				href, _ := a.Attr("href")
				if u, ok := resolveURL(base, href); ok && sameSite(base, u) {
					set.add(u, title, harvest.SourceCard)
					return
				}
			}
			if u, ok := constructURL(base, title, false); ok {
				set.add(u, title, harvest.SourceConstructed)
			}
		})
	}
}

// headingPass hunts for article titles in heading-like elements and pairs
// each with the nearest anchor, constructing a URL when none exists.
func (d *Discoverer) headingPass(doc *goquery.Document, base *url.URL, set *linkSet) {
	for _, sel := range headingSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			title := strings.TrimSpace(s.Text())
			if len(title) < 5 || len(title) > 300 {
				return
			}
			if !looksLikeArticleTitle(title) {
				return
			}

			if href, ok := nearestHref(s); ok {
				if u, ok := resolveURL(base, href); ok && sameSite(base, u) {
					set.add(u, title, harvest.SourceHeading)
					return
				}
			}
			if u, ok := constructURL(base, title, false); ok {
				set.add(u, title, harvest.SourceConstructed)
			}
		})
	}
}

// structuredPass scans content-scoped anchors with the strictest filter
// set: article-like URL, meaningful anchor text, and article context.
func (d *Discoverer) structuredPass(doc *goquery.Document, base *url.URL, set *linkSet) {
	for _, sel := range structuredSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			u, ok := resolveURL(base, href)
			if !ok || !sameSite(base, u) {
				return
			}
			if !IsLikelyArticleURL(u) {
				return
			}
			text := strings.TrimSpace(s.Text())
			if !meaningfulLinkText(text) {
				return
			}
			if !hasArticleContext(s) {
				return
			}
			set.add(u, text, harvest.SourceStructured)
		})
	}
}

// FindRenderedLinks applies relaxed heuristics to browser-rendered HTML.
// Anchors with real text are taken as-is; when rendering produced too few,
// clickable containers are mined for titles and URLs are constructed.
func (d *Discoverer) FindRenderedLinks(pageHTML, baseURL string) ([]harvest.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid base URL %q", baseURL)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "unparsable rendered page")
	}

	set := newLinkSet()
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) <= 5 {
			return
		}
		href, _ := s.Attr("href")
		if u, ok := resolveURL(base, href); ok && sameSite(base, u) {
			set.add(u, text, harvest.SourceRendered)
		}
	})

	if len(set.links) < 3 {
		doc.Find(`[style*="cursor"], [class*="card"], [class*="item"], [onclick]`).Each(func(_ int, card *goquery.Selection) {
			title := renderedCardTitle(card)
			if title == "" {
				return
			}
			if u, ok := constructURL(base, title, true); ok {
				set.add(u, title, harvest.SourceConstructed)
			}
		})
	}

	d.logger.Debug("rendered link discovery complete", "base", baseURL, "links", len(set.links))
	return set.links, nil
}

// renderedCardTitle extracts a plausible title from a clickable container:
// a heading if present, otherwise the first text line that is not a date
// or category label.
func renderedCardTitle(card *goquery.Selection) string {
	if h := card.Find("h1, h2, h3, h4, h5, h6").First(); h.Length() > 0 {
		if t := strings.TrimSpace(h.Text()); len(t) >= 10 && len(t) <= 200 {
			return t
		}
	}
	for _, line := range strings.Split(card.Text(), "\n") {
		t := strings.TrimSpace(line)
		t = strings.TrimSuffix(t, "...")
		t = strings.TrimSpace(strings.TrimSuffix(t, "Read more"))
		if len(t) < 10 || len(t) > 200 {
			continue
		}
		if dateTitleRe.MatchString(t) {
			continue
		}
		if genericTitles[strings.ToLower(t)] {
			continue
		}
		return t
	}
	return ""
}

// nearestHref finds the anchor closest to a heading: the heading's own
// anchor ancestry, an anchor inside it, then up to five parent levels.
func nearestHref(s *goquery.Selection) (string, bool) {
	if a := s.Closest("a"); a.Length() > 0 {
		if href, ok := a.Attr("href"); ok {
			return href, true
		}
	}
	if a := s.Find("a[href]").First(); a.Length() > 0 {
		return a.Attr("href")
	}
	parent := s.Parent()
	for i := 0; i < 5 && parent.Length() > 0; i++ {
		if a := parent.Find("a[href]").First(); a.Length() > 0 {
			return a.Attr("href")
		}
		parent = parent.Parent()
	}
	return "", false
}

// looksLikeArticleTitle applies word-count and shape heuristics to heading
// text.
func looksLikeArticleTitle(text string) bool {
	if genericTitles[strings.ToLower(strings.TrimSpace(text))] {
		return false
	}
	words := strings.Fields(text)
	if len(words) < 2 || len(words) > 25 {
		return false
	}

	lower := strings.ToLower(text)
	for _, w := range articleTitleWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	if text[0] >= 'A' && text[0] <= 'Z' {
		return true
	}
	return len(words) >= 3
}

// meaningfulLinkText rejects short or boilerplate anchor text.
func meaningfulLinkText(text string) bool {
	if len(text) < 5 {
		return false
	}
	if len(strings.Fields(text)) < 2 {
		return false
	}
	return !genericLinkText[strings.ToLower(text)]
}

// hasArticleContext inspects an anchor and its ancestry for signals that
// it links to an article rather than navigation or booking flows.
func hasArticleContext(s *goquery.Selection) bool {
	lower := strings.ToLower(strings.TrimSpace(s.Text()))
	for _, w := range nonArticleLinkWords {
		if strings.Contains(lower, w) {
			return false
		}
	}

	parent := s.Parent()
	for i := 0; i < 3 && parent.Length() > 0; i++ {
		if class, ok := parent.Attr("class"); ok {
			lc := strings.ToLower(class)
			for _, marker := range []string{"post", "article", "blog", "entry", "card", "item"} {
				if strings.Contains(lc, marker) {
					return true
				}
			}
		}
		if dateMentionRe.MatchString(parent.Text()) {
			return true
		}
		parent = parent.Parent()
	}
	return len(strings.Fields(lower)) >= 2
}
