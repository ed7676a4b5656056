package mock

import "github.com/fletchka/harvest"

var _ harvest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of harvest.Extractor.
type Extractor struct {
	TitleFn   func(html string) string
	AuthorFn  func(html string) string
	ContentFn func(html string) (string, error)
}

func (e *Extractor) Title(html string) string {
	return e.TitleFn(html)
}

func (e *Extractor) Author(html string) string {
	if e.AuthorFn == nil {
		return ""
	}
	return e.AuthorFn(html)
}

func (e *Extractor) Content(html string) (string, error) {
	return e.ContentFn(html)
}

var _ harvest.Converter = (*Converter)(nil)

// Converter is a mock implementation of harvest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ harvest.ContentStrategy = (*ContentStrategy)(nil)

// ContentStrategy is a mock implementation of harvest.ContentStrategy.
type ContentStrategy struct {
	NameFn func() string
	TryFn  func(html string) (harvest.Candidate, bool)
}

func (s *ContentStrategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *ContentStrategy) Try(html string) (harvest.Candidate, bool) {
	return s.TryFn(html)
}
