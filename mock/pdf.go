package mock

import "github.com/fletchka/harvest"

var _ harvest.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of harvest.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(path string) (string, error)
}

func (e *TextExtractor) ExtractText(path string) (string, error) {
	return e.ExtractTextFn(path)
}

var _ harvest.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of harvest.Chunker.
type Chunker struct {
	ChunkFn func(text string, title string) []harvest.PdfChunk
}

func (c *Chunker) Chunk(text string, title string) []harvest.PdfChunk {
	return c.ChunkFn(text, title)
}
