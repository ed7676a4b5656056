package harvest

// Extractor locates a title, author, and main-body text in a page.
type Extractor interface {
	// Title extracts the best article title, or "Untitled" if none is
	// recoverable.
	Title(html string) string

	// Author extracts the author name, or "" if none is found. Authors are
	// optional and never synthesized.
	Author(html string) string

	// Content extracts the main body as cleaned markdown. Returns an
	// ENOTFOUND-coded error when no extraction strategy produces content
	// that passes the quality gate.
	Content(html string) (string, error)
}

// Candidate is one content region proposed by a strategy, as raw HTML.
type Candidate struct {
	HTML string
}

// ContentStrategy is one element of the extraction cascade. Strategies are
// tried in a fixed priority order; the first whose candidate passes the
// quality gate wins.
type ContentStrategy interface {
	// Name returns the strategy's identifier (e.g., "semantic", "density").
	Name() string

	// Try proposes a content region from the HTML, or reports that the
	// strategy does not apply to this page.
	Try(html string) (Candidate, bool)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
