package harvest

// Strategy identifies how a page builds its content.
type Strategy string

// Page rendering strategies, from least to most browser-dependent.
const (
	StrategyStaticHTML     Strategy = "static_html"
	StrategyFrameworkBased Strategy = "framework_based"
	StrategyJSHeavy        Strategy = "javascript_heavy"
)

// ArchitectureProfile is the classification result for one page. It is
// ephemeral: computed per fetch, never persisted. The profile of a source's
// listing page governs the fetch strategy for its discovered article pages
// within the same run.
type ArchitectureProfile struct {
	Strategy       Strategy
	Frameworks     []string // JS framework names found via script-text heuristics
	ContentDensity float64  // visible text length / serialized markup length
}

// NeedsBrowserRendering reports whether the page requires a browser to
// produce its content. True for both non-static strategies.
func (p ArchitectureProfile) NeedsBrowserRendering() bool {
	return p.Strategy != StrategyStaticHTML
}

// Classifier decides a page's rendering architecture from its HTML.
// Implementations must never fail: unknown or empty input defaults to
// StrategyStaticHTML.
type Classifier interface {
	Classify(html string, pageURL string) ArchitectureProfile
}
