// Package pdf extracts and chunks text from PDF documents.
package pdf

import (
	"log/slog"
	"strings"

	"github.com/fletchka/harvest"
	"github.com/ledongthuc/pdf"
)

// Ensure Extractor implements harvest.TextExtractor at compile time.
var _ harvest.TextExtractor = (*Extractor)(nil)

// Extractor reads the text layer of PDF files page by page. Scanned PDFs
// without a text layer yield an error, never garbage output.
type Extractor struct {
	logger *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets the logger used for per-page debug output.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractText returns the cleaned text of the document. Unreadable pages
// are skipped; an entirely empty text layer is an EUNAVAILABLE-coded
// error.
func (e *Extractor) ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", harvest.Errorf(harvest.EUNAVAILABLE, "opening PDF %s: %v", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("skipping unreadable page", "path", path, "page", i, "error", err)
			continue
		}
		sb.WriteString(CleanPageText(text))
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", harvest.Errorf(harvest.EUNAVAILABLE, "no text layer in %s", path)
	}
	return out, nil
}
