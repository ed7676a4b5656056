// Package goquery provides goquery-backed implementations of the harvest
// content-detection interfaces: architecture classification, content
// extraction, and article link discovery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fletchka/harvest"
)

// Ensure Classifier implements harvest.Classifier at compile time.
var _ harvest.Classifier = (*Classifier)(nil)

// densityThreshold is the content density below which a page is assumed to
// paint its content client-side.
const densityThreshold = 0.02

// frameworkTokens are matched case-insensitively against concatenated
// script text.
var frameworkTokens = []string{"react", "vue", "angular", "next", "svelte"}

var spaClassRe = regexp.MustCompile(`app|root`)

// Classifier decides whether a page is static HTML, framework-rendered, or
// JavaScript-heavy. It is stateless and safe for concurrent use.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify inspects the page's DOM and returns its architecture profile.
// Classify never fails: unparsable or empty input yields a static profile,
// the closest to "no special handling needed". Classifying the same HTML
// twice yields identical profiles.
func (c *Classifier) Classify(html string, pageURL string) harvest.ArchitectureProfile {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return harvest.ArchitectureProfile{Strategy: harvest.StrategyStaticHTML}
	}

	// Framework tokens in script text set per-framework flags.
	var scriptText strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		scriptText.WriteString(s.Text())
		scriptText.WriteString(" ")
	})
	scripts := strings.ToLower(scriptText.String())

	var frameworks []string
	for _, token := range frameworkTokens {
		if strings.Contains(scripts, token) {
			frameworks = append(frameworks, token)
		}
	}

	// Content density: visible text over serialized markup, divisor
	// floored at 1.
	text := strings.TrimSpace(doc.Text())
	markupLen := len(html)
	if markupLen < 1 {
		markupLen = 1
	}
	density := float64(len(text)) / float64(markupLen)

	profile := harvest.ArchitectureProfile{
		Frameworks:     frameworks,
		ContentDensity: density,
	}

	switch {
	case density < densityThreshold || hasSPAMarker(doc):
		profile.Strategy = harvest.StrategyJSHeavy
	case len(frameworks) > 0:
		profile.Strategy = harvest.StrategyFrameworkBased
	default:
		profile.Strategy = harvest.StrategyStaticHTML
	}

	return profile
}

// hasSPAMarker checks for the container elements SPAs mount into.
func hasSPAMarker(doc *goquery.Document) bool {
	if doc.Find("#root, #app").Length() > 0 {
		return true
	}

	found := false
	doc.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if spaClassRe.MatchString(class) {
			found = true
			return false
		}
		return true
	})
	return found
}
