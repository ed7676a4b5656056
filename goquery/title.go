package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// genericTitles are titles that name the page's role rather than its
// subject and are never accepted.
var genericTitles = map[string]bool{
	"blog": true, "home": true, "index": true, "main": true,
	"page": true, "article": true, "post": true, "news": true,
	"updates": true, "content": true, "site": true, "website": true,
}

// contentContainers scope the first two title probes to the article body.
const contentContainers = "main, article, [role=\"main\"]"

// Title extracts the best article title. Candidates are probed from the
// most article-specific location outward, ending at document metadata.
// Returns "Untitled" when nothing usable is found.
func (e *Extractor) Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "Untitled"
	}

	if t := usableTitle(doc.Find(contentContainers).Find("h1").First().Text()); t != "" {
		return t
	}
	if t := usableTitle(doc.Find(contentContainers).Find("h2").First().Text()); t != "" {
		return t
	}
	if t := usableTitle(prominentHeading(doc)); t != "" {
		return t
	}
	if t := usableTitle(doc.Find(contentContainers).Find("[class*=\"title\"]").First().Text()); t != "" {
		return t
	}
	if t := usableTitle(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := usableTitle(doc.Find("h2").First().Text()); t != "" {
		return t
	}
	if t := usableTitle(doc.Find(".title, .post-title, .entry-title").First().Text()); t != "" {
		return t
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t := usableTitle(og); t != "" {
			return t
		}
	}
	if t := usableTitle(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return "Untitled"
}

// prominentHeading scores every h1-h3 by level and length and returns the
// winner. Higher heading levels dominate; length breaks ties up to a cap.
func prominentHeading(doc *goquery.Document) string {
	best := ""
	bestScore := 0
	for level, tag := range []string{"h1", "h2", "h3"} {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) <= 10 {
				return
			}
			length := len(text)
			if length > 100 {
				length = 100
			}
			score := (3-level)*10 + length
			if score > bestScore {
				best = text
				bestScore = score
			}
		})
	}
	return best
}

// usableTitle trims a candidate and rejects short or generic ones.
func usableTitle(text string) string {
	t := strings.TrimSpace(text)
	if len(t) <= 3 {
		return ""
	}
	if genericTitles[strings.ToLower(t)] {
		return ""
	}
	return t
}
