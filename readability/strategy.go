// Package readability adapts go-readability as a content strategy in the
// extraction cascade.
package readability

import (
	"strings"

	"github.com/fletchka/harvest"
	"github.com/go-shiori/go-readability"
)

// Ensure Strategy implements harvest.ContentStrategy at compile time.
var _ harvest.ContentStrategy = (*Strategy)(nil)

// Strategy proposes the content region identified by the readability
// algorithm. Useful on pages whose markup defeats the selector-based
// strategies.
type Strategy struct{}

// NewStrategy creates a new Strategy.
func NewStrategy() *Strategy {
	return &Strategy{}
}

// Name returns the strategy's identifier.
func (Strategy) Name() string { return "readability" }

// Try runs readability over the page and proposes its content node.
func (Strategy) Try(rawHTML string) (harvest.Candidate, bool) {
	if strings.TrimSpace(rawHTML) == "" {
		return harvest.Candidate{}, false
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return harvest.Candidate{}, false
	}
	return harvest.Candidate{HTML: article.Content}, true
}
