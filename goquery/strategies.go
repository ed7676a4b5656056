package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fletchka/harvest"
)

// Minimum sizes for the density and long-text strategies.
const (
	densityMinRatio  = 0.1
	densityMinLength = 200
	longTextMinimum  = 500
)

// contentClassSelectors is the fixed priority list of common content
// class names tried by the class strategy.
var contentClassSelectors = []string{
	".post-content", ".entry-content", ".article-content",
	".content", ".main-content", ".post-body", ".entry-body",
}

// SemanticStrategy locates content through semantic HTML tags.
type SemanticStrategy struct{}

// Name returns the strategy's identifier.
func (SemanticStrategy) Name() string { return "semantic" }

// Try returns the first article, main, or role=main element.
func (SemanticStrategy) Try(html string) (harvest.Candidate, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return harvest.Candidate{}, false
	}
	for _, sel := range []string{"article", "main", "[role=\"main\"]"} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return candidateFromSelection(s)
		}
	}
	return harvest.Candidate{}, false
}

// ClassStrategy locates content through common content class names.
type ClassStrategy struct{}

// Name returns the strategy's identifier.
func (ClassStrategy) Name() string { return "class" }

// Try returns the first element matching the content class priority list.
func (ClassStrategy) Try(html string) (harvest.Candidate, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return harvest.Candidate{}, false
	}
	for _, sel := range contentClassSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return candidateFromSelection(s)
		}
	}
	return harvest.Candidate{}, false
}

// DensityStrategy picks the block element with the most text among those
// whose text-to-markup ratio and length clear minimum thresholds. Sparse
// blocks are usually navigation or ads.
type DensityStrategy struct{}

// Name returns the strategy's identifier.
func (DensityStrategy) Name() string { return "density" }

// Try scans all block-level elements and returns the densest survivor.
func (DensityStrategy) Try(html string) (harvest.Candidate, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return harvest.Candidate{}, false
	}

	var best *goquery.Selection
	bestLen := 0
	doc.Find("div, section, article").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		textLen := len(s.Text())
		outer, err := goquery.OuterHtml(s)
		if err != nil || len(outer) == 0 {
			return
		}
		if float64(textLen)/float64(len(outer)) < densityMinRatio {
			return
		}
		if textLen < densityMinLength {
			return
		}
		if textLen > bestLen {
			best = s
			bestLen = textLen
		}
	})

	if best == nil {
		return harvest.Candidate{}, false
	}
	return candidateFromSelection(best)
}

// LongTextStrategy is the crude last resort: the first block element with
// substantial text.
type LongTextStrategy struct{}

// Name returns the strategy's identifier.
func (LongTextStrategy) Name() string { return "longtext" }

// Try returns the first block element whose text exceeds the minimum.
func (LongTextStrategy) Try(html string) (harvest.Candidate, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return harvest.Candidate{}, false
	}

	var found *goquery.Selection
	doc.Find("div, section, article, main").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(strings.TrimSpace(s.Text())) > longTextMinimum {
			found = s
			return false
		}
		return true
	})

	if found == nil {
		return harvest.Candidate{}, false
	}
	return candidateFromSelection(found)
}

// candidateFromSelection serializes a selection into a candidate.
func candidateFromSelection(s *goquery.Selection) (harvest.Candidate, bool) {
	outer, err := goquery.OuterHtml(s)
	if err != nil || strings.TrimSpace(outer) == "" {
		return harvest.Candidate{}, false
	}
	return harvest.Candidate{HTML: outer}, true
}
