package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// bylineRes match free-text bylines when no structural author markup
// exists, e.g. "Jane Doe · Co-Founder" or "By Jane Doe".
var bylineRes = []*regexp.Regexp{
	regexp.MustCompile(`\w+\s+\w+\s*·\s*(Co-Founder|Author|Writer|Editor|CEO|CTO)`),
	regexp.MustCompile(`By\s+\w+\s+\w+`),
	regexp.MustCompile(`\w+\s+\w+\s*-\s*(Co-Founder|Author|Writer|Editor)`),
}

var roleWords = []string{"Co-Founder", "Author", "Writer", "Editor", "CEO", "CTO"}

// Author extracts the author name, or "" when nothing credible is found.
// Structural markup is probed first, free-text byline patterns last.
func (e *Extractor) Author(pageHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return ""
	}

	for _, sel := range []string{".author", ".byline", ".by", `[rel="author"]`} {
		if a := cleanAuthor(doc.Find(sel).First().Text()); a != "" {
			return a
		}
	}
	if s := doc.Find(`[property="article:author"]`).First(); s.Length() > 0 {
		text := s.Text()
		if content, ok := s.Attr("content"); ok && strings.TrimSpace(text) == "" {
			text = content
		}
		if a := cleanAuthor(text); a != "" {
			return a
		}
	}
	if content, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok {
		if a := cleanAuthor(content); a != "" {
			return a
		}
	}

	for _, re := range bylineRes {
		if text := findTextNode(doc, re); text != "" {
			if a := cleanAuthor(text); a != "" {
				return a
			}
		}
	}
	return ""
}

// findTextNode returns the first text node matching re, skipping script
// and style bodies.
func findTextNode(doc *goquery.Document, re *regexp.Regexp) string {
	var found string
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return false
		}
		if n.Type == html.TextNode && re.MatchString(n.Data) {
			found = n.Data
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, n := range doc.Nodes {
		if walk(n) {
			break
		}
	}
	return found
}

// cleanAuthor normalizes a byline down to a bare name and rejects
// candidates that look like links, handles, or navigation text.
func cleanAuthor(text string) string {
	a := strings.TrimSpace(text)
	if a == "" {
		return ""
	}

	if i := strings.Index(a, "·"); i >= 0 {
		a = strings.TrimSpace(a[:i])
	}
	if strings.Contains(a, "-") {
		for _, role := range roleWords {
			if strings.Contains(a, role) {
				a = strings.TrimSpace(strings.SplitN(a, "-", 2)[0])
				break
			}
		}
	}
	if len(a) > 3 && strings.EqualFold(a[:3], "by ") {
		a = strings.TrimSpace(a[3:])
	}

	lower := strings.ToLower(a)
	for _, bad := range []string{"@", "http", "www", "blog", "post"} {
		if strings.Contains(lower, bad) {
			return ""
		}
	}
	if len(a) <= 2 {
		return ""
	}
	return a
}
