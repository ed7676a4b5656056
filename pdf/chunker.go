package pdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fletchka/harvest"
)

// Ensure Chunker implements harvest.Chunker at compile time.
var _ harvest.Chunker = (*Chunker)(nil)

// chapterPatterns are tried in order; the first with at least two matches
// partitions the document. Later patterns are progressively looser.
var chapterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bChapter\s+\d+[.\s]`),
	regexp.MustCompile(`(?i)\bCh\s*\d+[.\s]`),
	regexp.MustCompile(`\bCHAPTER\s+\d+[.\s]`),
	regexp.MustCompile(`(?i)\bCh\s+\d+\.`),
	regexp.MustCompile(`(?i)\bCh\d+\.`),
	regexp.MustCompile(`\b\d+\.\s+[A-Z][^.]{10,}`),
	regexp.MustCompile(`\n\s*\d+\s+[A-Z][^.\n]{10,}`),
	regexp.MustCompile(`(?i)\n\s*Ch\s*\d+[.\s]`),
}

var chapterPrefixRe = regexp.MustCompile(`(?i)^(Chapter|Ch)\s*\d+[.\s]*`)

var (
	paragraphBreakRe = regexp.MustCompile(`\n[ \t]*\n\s*`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// Chunker segments book text into chapter-based chunks, sub-splitting
// oversized chapters and falling back to size-based splitting when no
// chapter structure is detectable.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a Chunker. Non-positive arguments fall back to the
// source defaults.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = harvest.DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = harvest.DefaultChunkOverlap
	}
	return &Chunker{size: size, overlap: overlap}
}

// Chunk splits document text into chunks. Every returned chunk carries
// the same TotalChunks, back-filled after splitting; ChunkIndex follows
// reading order.
func (c *Chunker) Chunk(text string, title string) []harvest.PdfChunk {
	norm := normalize(text)
	if norm == "" {
		return nil
	}

	var chunks []harvest.PdfChunk
	if len(norm) <= c.size {
		chunks = []harvest.PdfChunk{{
			Title:   title + " (Complete)",
			Content: norm,
		}}
	} else if sections := splitChapters(text); sections != nil {
		for i, sec := range sections {
			chunks = append(chunks, c.chunkChapter(sec, i+1)...)
		}
	} else {
		chunks = c.splitBySize(norm, func(part int) string {
			return fmt.Sprintf("%s (Part %d)", title, part)
		})
	}

	for i := range chunks {
		chunks[i].ChunkIndex = i
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks
}

// chapterSection is one detected chapter: its heading line and body.
type chapterSection struct {
	title string
	body  string
}

// splitChapters partitions raw text at chapter headings. Returns nil when
// no pattern produces at least two chapters.
func splitChapters(text string) []chapterSection {
	for _, re := range chapterPatterns {
		locs := re.FindAllStringIndex(text, -1)
		if len(locs) < 2 {
			continue
		}

		sections := make([]chapterSection, 0, len(locs))
		for i, loc := range locs {
			start := loc[0]
			end := len(text)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			sections = append(sections, chapterSection{
				title: chapterTitle(text[start:end], i+1),
				body:  text[start:end],
			})
		}
		return sections
	}
	return nil
}

// chapterTitle derives a chapter's title from its first line, stripping
// the "Chapter N" prefix. Falls back to a numbered title.
func chapterTitle(section string, n int) string {
	head := section
	if len(head) > 200 {
		head = head[:200]
	}
	firstLine := head
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		firstLine = head[:i]
	}
	t := strings.TrimSpace(chapterPrefixRe.ReplaceAllString(strings.TrimSpace(firstLine), ""))
	if t == "" {
		return fmt.Sprintf("Chapter %d", n)
	}
	return t
}

// chunkChapter emits one chunk per chapter, sub-splitting chapters more
// than twice the chunk size.
func (c *Chunker) chunkChapter(sec chapterSection, n int) []harvest.PdfChunk {
	content := normalize(sec.body)
	if content == "" {
		return nil
	}
	if len(content) <= 2*c.size {
		return []harvest.PdfChunk{{Title: sec.title, Content: content}}
	}
	return c.splitBySize(content, func(part int) string {
		return fmt.Sprintf("%s (Part %d)", sec.title, part)
	})
}

// splitBySize cuts content into size-bounded chunks, preferring paragraph
// breaks near the cut point, then sentence boundaries, and overlapping
// adjacent chunks so no sentence is stranded at a boundary.
func (c *Chunker) splitBySize(content string, title func(part int) string) []harvest.PdfChunk {
	var chunks []harvest.PdfChunk
	start := 0
	part := 1
	for start < len(content) {
		end := start + c.size
		if end >= len(content) {
			end = len(content)
		} else if cut := paragraphBreak(content, end, c.overlap); cut > start {
			end = cut
		} else if cut := sentenceEnd(content, end, c.overlap); cut > start {
			end = cut
		}

		piece := strings.TrimSpace(content[start:end])
		if piece != "" {
			chunks = append(chunks, harvest.PdfChunk{Title: title(part), Content: piece})
			part++
		}
		if end >= len(content) {
			break
		}
		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// paragraphBreak looks for a blank-line separator within window bytes of
// pos and returns its index, or 0 when none is found.
func paragraphBreak(content string, pos, window int) int {
	lo := pos - window
	if lo < 0 {
		lo = 0
	}
	hi := pos + window
	if hi > len(content) {
		hi = len(content)
	}
	if i := strings.LastIndex(content[lo:hi], "\n\n"); i >= 0 {
		return lo + i
	}
	return 0
}

// sentenceEnd looks for sentence-ending punctuation within window bytes
// of pos and returns the index just past it, or 0 when none is found.
func sentenceEnd(content string, pos, window int) int {
	lo := pos - window
	if lo < 0 {
		lo = 0
	}
	hi := pos + window
	if hi > len(content)-1 {
		hi = len(content) - 1
	}
	for i := hi; i > lo; i-- {
		switch content[i] {
		case '.', '!', '?':
			if i+1 < len(content) && content[i+1] == ' ' {
				return i + 1
			}
		}
	}
	return 0
}

// normalize collapses whitespace within paragraphs to single spaces while
// keeping blank-line paragraph separators, so later splitting can still
// prefer paragraph boundaries.
func normalize(text string) string {
	paras := paragraphBreakRe.Split(text, -1)
	kept := paras[:0]
	for _, p := range paras {
		p = strings.TrimSpace(whitespaceRe.ReplaceAllString(p, " "))
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
