package harvest

import (
	"context"
	"regexp"
	"strings"
)

// ContentType classifies a content item. Inferred from the source, never
// user-set for web sources.
type ContentType string

// Known content types.
const (
	ContentTypeBlog           ContentType = "blog"
	ContentTypeBook           ContentType = "book"
	ContentTypeLinkedInPost   ContentType = "linkedin_post"
	ContentTypeRedditComment  ContentType = "reddit_comment"
	ContentTypePodcast        ContentType = "podcast_transcript"
	ContentTypeCallTranscript ContentType = "call_transcript"
)

// MinContentLength is the minimum body length for an item to be accepted.
// Extractions below this floor are discarded, not emitted as empty records.
const MinContentLength = 100

// ContentItem is one unit of extracted content. Items are immutable after
// creation. The JSON tag order matches the export contract's key order.
type ContentItem struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	SourceURL   string      `json:"source_url"`
	Author      string      `json:"author"`
	UserID      string      `json:"user_id"`
}

// Validate returns an error if the item contains invalid fields.
func (i *ContentItem) Validate() error {
	if i.Title == "" {
		return Errorf(EINVALID, "item title required")
	}
	if len(strings.TrimSpace(i.Content)) < MinContentLength {
		return Errorf(EINVALID, "item content shorter than %d characters", MinContentLength)
	}
	return nil
}

// Export is the output contract consumed by the persistence layer.
type Export struct {
	TeamID string        `json:"team_id"`
	Items  []ContentItem `json:"items"`
}

// ItemService represents a service for managing stored content items.
type ItemService interface {
	// CreateItem stores a new item under a run.
	CreateItem(ctx context.Context, runID string, item *ContentItem) error

	// FindItemsByRun retrieves all items for a run in insertion order.
	FindItemsByRun(ctx context.Context, runID string) ([]*ContentItem, error)

	// DeleteItemsByRun removes all items for a run.
	DeleteItemsByRun(ctx context.Context, runID string) error
}

// Exporter writes an export to its destination.
type Exporter interface {
	Export(ctx context.Context, export *Export) error
}

var (
	podcastContentRe = regexp.MustCompile(`(?i)transcript:|speaker:|host:|\[music\]|\[applause\]`)
	callContentRe    = regexp.MustCompile(`(?i)attendees:|participants:|meeting started|call ended`)
)

var podcastIndicators = []string{"podcast", "transcript", "audio", "episode", "interview"}

// DetectContentType infers a content type from a URL, title, and the leading
// portion of the content. It is a pure function: the same inputs always
// produce the same verdict.
func DetectContentType(url, title, content string) ContentType {
	urlLower := strings.ToLower(url)
	titleLower := strings.ToLower(title)
	contentLower := strings.ToLower(content)
	if len(contentLower) > 500 {
		contentLower = contentLower[:500]
	}

	if strings.Contains(urlLower, "linkedin.com") {
		if strings.Contains(urlLower, "/pulse/") {
			return ContentTypeBlog // LinkedIn articles read like blogs
		}
		return ContentTypeLinkedInPost
	}

	if strings.Contains(urlLower, "reddit.com") {
		return ContentTypeRedditComment
	}

	for _, ind := range podcastIndicators {
		if strings.Contains(urlLower, ind) || strings.Contains(titleLower, ind) {
			return ContentTypePodcast
		}
	}
	if podcastContentRe.MatchString(contentLower) {
		return ContentTypePodcast
	}

	for _, ind := range []string{"call transcript", "meeting transcript", "call notes", "meeting notes"} {
		if strings.Contains(titleLower, ind) {
			return ContentTypeCallTranscript
		}
	}
	if callContentRe.MatchString(contentLower) {
		return ContentTypeCallTranscript
	}

	if strings.Contains(urlLower, "youtube.com") || strings.Contains(urlLower, "youtu.be") {
		for _, ind := range []string{"podcast", "interview", "talk", "discussion"} {
			if strings.Contains(titleLower, ind) {
				return ContentTypePodcast
			}
		}
		return ContentTypeBlog
	}

	return ContentTypeBlog
}
