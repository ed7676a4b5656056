package goquery

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fletchka/harvest"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Extractor implements harvest.Extractor at compile time.
var _ harvest.Extractor = (*Extractor)(nil)

// noiseSelectors match elements stripped from every candidate before
// conversion.
var noiseSelectors = []string{
	".ad", ".advertisement", ".social", ".share", ".related", ".comments",
}

var (
	multiBlankRe = regexp.MustCompile(`\n\s*\n\s*\n`)
	emptyLinkRe  = regexp.MustCompile(`\[\]\([^)]*\)`)
	markdownRe   = regexp.MustCompile("[#*\\[\\]()_`-]")
)

// Extractor runs a prioritized cascade of content strategies and converts
// the winning candidate to cleaned markdown.
type Extractor struct {
	strategies []harvest.ContentStrategy
	converter  harvest.Converter
	sanitizer  *bluemonday.Policy
	logger     *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithStrategies replaces the default strategy cascade.
func WithStrategies(strategies ...harvest.ContentStrategy) ExtractorOption {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// WithLogger sets the logger used for per-strategy debug output.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor with the default strategy cascade:
// semantic tags, content classes, text density, then a long-text fallback.
func NewExtractor(converter harvest.Converter, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		strategies: []harvest.ContentStrategy{
			SemanticStrategy{},
			ClassStrategy{},
			DensityStrategy{},
			LongTextStrategy{},
		},
		converter: converter,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Content extracts the main body as cleaned markdown. Strategies are tried
// in priority order and the first candidate that survives the quality gate
// wins. Returns an ENOTFOUND-coded error when nothing survives.
func (e *Extractor) Content(html string) (string, error) {
	for _, strategy := range e.strategies {
		cand, ok := strategy.Try(html)
		if !ok {
			continue
		}
		md, err := e.render(cand)
		if err != nil {
			e.logger.Debug("candidate conversion failed", "strategy", strategy.Name(), "error", err)
			continue
		}
		if !qualityContent(md) {
			e.logger.Debug("candidate rejected by quality gate", "strategy", strategy.Name(), "length", len(md))
			continue
		}
		e.logger.Debug("content extracted", "strategy", strategy.Name(), "length", len(md))
		return md, nil
	}
	return "", harvest.Errorf(harvest.ENOTFOUND, "no content found")
}

// render strips noise elements, sanitizes, converts to markdown, and
// normalizes whitespace.
func (e *Extractor) render(cand harvest.Candidate) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cand.HTML))
	if err != nil {
		return "", err
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	cleaned, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}

	md, err := e.converter.Convert(e.sanitizer.Sanitize(cleaned))
	if err != nil {
		return "", err
	}
	return cleanMarkdown(md), nil
}

// cleanMarkdown collapses blank-line runs and drops empty links left over
// from stripped images and scripts.
func cleanMarkdown(md string) string {
	md = multiBlankRe.ReplaceAllString(md, "\n\n")
	md = emptyLinkRe.ReplaceAllString(md, "")
	return strings.TrimSpace(md)
}

// qualityContent reports whether extracted markdown is substantial enough
// to keep: at least the minimum length, and mostly prose rather than
// markdown syntax characters.
func qualityContent(content string) bool {
	text := strings.TrimSpace(content)
	if len(text) < harvest.MinContentLength {
		return false
	}
	stripped := markdownRe.ReplaceAllString(text, "")
	return float64(len(stripped))/float64(len(text)) > 0.5
}
