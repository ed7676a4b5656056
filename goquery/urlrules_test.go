package goquery_test

import (
	"testing"

	"github.com/fletchka/harvest/goquery"
	"github.com/stretchr/testify/assert"
)

func TestIsLikelyArticleURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/blog/how-we-scaled", true},
		{"https://example.com/post/launch-day", true},
		{"https://example.com/2024/05/retrospective", true},
		{"https://example.com/p-1234", true},
		{"https://example.com/stories/building-better-teams", true},
		{"https://example.com/tag/engineering", false},
		{"https://example.com/blog/category/news-roundup", false},
		{"https://example.com/about/", false},
		{"https://example.com/assets/diagram.png", false},
		{"https://cal.com/founder/intro-chat", false},
		{"https://example.com/pricing", false},
		{"https://example.com/blog/feed", false},
		{"https://example.com/", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.IsLikelyArticleURL(tt.url), tt.url)
		})
	}
}
