package goquery

import (
	"net/url"
	"regexp"
	"strings"
)

// articlePathMarkers are substrings whose presence marks a URL as likely
// pointing at an article.
var articlePathMarkers = []string{
	"/blog/", "/post/", "/article/", "/story/", "/guide/", "/tutorial/",
	"/how-to/", "/tips/", "/news/", "/insights/", "/p-", "/post-", "/article-",
}

// nonArticleMarkers are substrings that disqualify a URL outright:
// taxonomy pages, auth flows, assets, booking and legal pages.
var nonArticleMarkers = []string{
	"/tag/", "/category/", "/author/", "/page/", "/search/", "/login/",
	"/register/", "/contact/", "/about/", "/api/",
	".pdf", ".jpg", ".png", ".gif", ".css", ".js", ".xml",
	"/feed", "/rss", "/sitemap",
	"/book", "/demo", "/pricing", "/trial", "/signup",
	"/calendar", "/schedule", "cal.com", "calendly.com",
	"/meeting", "/appointment", "/call", "/intro", "/consultation",
	"/support", "/help", "/faq",
	"/terms", "/privacy", "/policy", "/legal", "/careers", "/jobs",
}

var (
	datePathRe  = regexp.MustCompile(`/20\d{2}/`)
	shortPostRe = regexp.MustCompile(`/p-\d+`)
	slugPathRe  = regexp.MustCompile(`[a-z]+-[a-z]+-[a-z]+`)
	numericIDRe = regexp.MustCompile(`/\d+/`)

	nonSlugRe     = regexp.MustCompile(`[^\w\s-]`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
	dashRunRe     = regexp.MustCompile(`-+`)
	dateTitleRe   = regexp.MustCompile(`^[A-Za-z]+\s+\d{1,2},\s+\d{4}$`)
	dateMentionRe = regexp.MustCompile(`\b(20\d{2}|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\b`)
)

// slugStopWords are dropped when building a constructed URL slug from a
// long title.
var slugStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// IsLikelyArticleURL reports whether a URL points at article-like content.
// The URL must carry at least one positive marker and no negative one.
func IsLikelyArticleURL(rawURL string) bool {
	u := strings.ToLower(rawURL)

	for _, marker := range nonArticleMarkers {
		if strings.Contains(u, marker) {
			return false
		}
	}

	for _, marker := range articlePathMarkers {
		if strings.Contains(u, marker) {
			return true
		}
	}
	if datePathRe.MatchString(u) {
		return true
	}
	if shortPostRe.MatchString(u) || slugPathRe.MatchString(u) || numericIDRe.MatchString(u) {
		return true
	}
	return false
}

// slugFromTitle converts a title to a URL slug. When dropStopWords is set
// and the title has more than three words, filler words are removed first.
func slugFromTitle(title string, dropStopWords bool) string {
	t := strings.ToLower(strings.TrimSpace(title))
	if dropStopWords {
		words := strings.Fields(t)
		if len(words) > 3 {
			kept := words[:0]
			for _, w := range words {
				if !slugStopWords[w] {
					kept = append(kept, w)
				}
			}
			t = strings.Join(kept, " ")
		}
	}
	t = nonSlugRe.ReplaceAllString(t, "")
	t = spaceRunRe.ReplaceAllString(strings.TrimSpace(t), "-")
	t = dashRunRe.ReplaceAllString(t, "-")
	return strings.Trim(t, "-")
}

// constructURL guesses an article URL from a title. Date-only titles never
// produce URLs. The slug is appended under the base's blog path.
func constructURL(base *url.URL, title string, dropStopWords bool) (string, bool) {
	if dateTitleRe.MatchString(strings.TrimSpace(title)) {
		return "", false
	}
	slug := slugFromTitle(title, dropStopWords)
	if slug == "" {
		return "", false
	}

	path := strings.TrimRight(base.Path, "/")
	if strings.HasSuffix(path, "/blog") {
		path = path + "/" + slug
	} else {
		path = path + "/blog/" + slug
	}
	guessed := *base
	guessed.Path = path
	guessed.RawQuery = ""
	guessed.Fragment = ""
	return guessed.String(), true
}

// resolveURL resolves href against base and drops fragments. Returns false
// for unparsable or non-http results.
func resolveURL(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	abs.Fragment = ""
	return abs.String(), true
}

// sameSite reports whether linkURL belongs to the same site as base, where
// content subdomains (blog, www, news, articles) of the base domain count
// as the same site.
func sameSite(base *url.URL, linkURL string) bool {
	u, err := url.Parse(linkURL)
	if err != nil {
		return false
	}
	baseHost := strings.TrimPrefix(strings.ToLower(base.Hostname()), "www.")
	linkHost := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if baseHost == linkHost {
		return true
	}
	for _, prefix := range []string{"blog.", "news.", "articles."} {
		if linkHost == prefix+baseHost {
			return true
		}
	}
	return false
}
