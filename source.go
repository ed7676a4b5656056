package harvest

import "time"

// SourceType identifies what kind of input a source descriptor points at.
type SourceType string

// Source types.
const (
	SourceTypeWeb SourceType = "web"
	SourceTypePDF SourceType = "pdf"
)

// Default source configuration values.
const (
	DefaultMaxArticles  = 50
	DefaultDelay        = 1 * time.Second
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Source describes one input to a scrape run: a listing URL or a PDF path.
type Source struct {
	URL          string        `yaml:"url" json:"url"`
	Type         SourceType    `yaml:"source_type" json:"source_type"`
	MaxArticles  int           `yaml:"max_articles" json:"max_articles"`
	Delay        time.Duration `yaml:"delay" json:"delay"`
	ChunkSize    int           `yaml:"chunk_size" json:"chunk_size"`
	ChunkOverlap int           `yaml:"chunk_overlap" json:"chunk_overlap"`

	// Title and Author apply to PDF sources only.
	Title  string `yaml:"title" json:"title"`
	Author string `yaml:"author" json:"author"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "source URL required")
	}
	if s.Type != SourceTypeWeb && s.Type != SourceTypePDF {
		return Errorf(EINVALID, "unknown source type %q", s.Type)
	}
	return nil
}

// WithDefaults returns a copy with zero-valued fields replaced by defaults.
func (s Source) WithDefaults() Source {
	if s.Type == "" {
		s.Type = SourceTypeWeb
	}
	if s.MaxArticles <= 0 {
		s.MaxArticles = DefaultMaxArticles
	}
	if s.Delay <= 0 {
		s.Delay = DefaultDelay
	}
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.ChunkOverlap <= 0 {
		s.ChunkOverlap = DefaultChunkOverlap
	}
	return s
}

// ProgressFunc is called before each item is processed: current is 1-based,
// total is the number of items planned for the source. Called exactly once
// per item, never skipped.
type ProgressFunc func(current, total int, url string)
