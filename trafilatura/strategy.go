// Package trafilatura adapts go-trafilatura as a content strategy in the
// extraction cascade.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fletchka/harvest"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Strategy implements harvest.ContentStrategy at compile time.
var _ harvest.ContentStrategy = (*Strategy)(nil)

// Strategy proposes the content region identified by trafilatura.
type Strategy struct{}

// NewStrategy creates a new Strategy.
func NewStrategy() *Strategy {
	return &Strategy{}
}

// Name returns the strategy's identifier.
func (Strategy) Name() string { return "trafilatura" }

// Try runs trafilatura over the page and proposes its content node.
func (Strategy) Try(rawHTML string) (harvest.Candidate, bool) {
	if strings.TrimSpace(rawHTML) == "" {
		return harvest.Candidate{}, false
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result.ContentNode == nil {
		return harvest.Candidate{}, false
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return harvest.Candidate{}, false
	}
	return harvest.Candidate{HTML: buf.String()}, true
}
