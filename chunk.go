package harvest

// PdfChunk is one chapter or chapter-fragment emitted from a PDF document.
// ChunkIndex values are contiguous in document reading order. TotalChunks
// is identical across all chunks of one document and equals the final chunk
// count; it is back-filled by the chunker before chunks are returned, the
// only post-creation mutation in the data model.
type PdfChunk struct {
	Title       string
	Content     string
	ChunkIndex  int
	TotalChunks int
}

// Item converts the chunk to a ContentItem. PDF chunks always have
// content_type "book".
func (c PdfChunk) Item(sourceURL, author string) ContentItem {
	return ContentItem{
		Title:       c.Title,
		Content:     c.Content,
		ContentType: ContentTypeBook,
		SourceURL:   sourceURL,
		Author:      author,
	}
}

// TextExtractor pulls the text layer out of a PDF file.
type TextExtractor interface {
	// ExtractText returns the cleaned text of the document, page by page.
	// Returns an EUNAVAILABLE-coded error if no PDF backend can read the
	// file.
	ExtractText(path string) (string, error)
}

// Chunker segments PDF text into chapter- or size-based chunks.
type Chunker interface {
	Chunk(text string, title string) []PdfChunk
}
