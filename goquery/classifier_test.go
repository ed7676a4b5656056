package goquery_test

import (
	"strings"
	"testing"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/goquery"
	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	prose := strings.Repeat("Plenty of readable article text here. ", 40)

	t.Run("static page with dense text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><p>` + prose + `</p></article></body></html>`

		c := goquery.NewClassifier()
		profile := c.Classify(html, "https://example.com/blog")

		assert.Equal(t, harvest.StrategyStaticHTML, profile.Strategy)
		assert.False(t, profile.NeedsBrowserRendering())
		assert.Empty(t, profile.Frameworks)
		assert.Greater(t, profile.ContentDensity, 0.02)
	})

	t.Run("framework markers with dense text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<script>window.React={version:"18"};</script>
			<div><p>` + prose + `</p></div>
		</body></html>`

		c := goquery.NewClassifier()
		profile := c.Classify(html, "https://example.com/blog")

		assert.Equal(t, harvest.StrategyFrameworkBased, profile.Strategy)
		assert.True(t, profile.NeedsBrowserRendering())
		assert.Contains(t, profile.Frameworks, "react")
	})

	t.Run("sparse page is javascript heavy", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div></div>` + strings.Repeat("<!-- padding -->", 200) + `</body></html>`

		c := goquery.NewClassifier()
		profile := c.Classify(html, "https://example.com/blog")

		assert.Equal(t, harvest.StrategyJSHeavy, profile.Strategy)
		assert.True(t, profile.NeedsBrowserRendering())
	})

	t.Run("spa mount point overrides frameworks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<script>window.Vue={};</script>
			<div id="root"><p>` + prose + `</p></div>
		</body></html>`

		c := goquery.NewClassifier()
		profile := c.Classify(html, "https://example.com/blog")

		assert.Equal(t, harvest.StrategyJSHeavy, profile.Strategy)
	})

	t.Run("empty input is static", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier()
		profile := c.Classify("", "https://example.com")

		assert.Equal(t, harvest.StrategyStaticHTML, profile.Strategy)
	})

	t.Run("classification is deterministic", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>vue</script><p>` + prose + `</p></body></html>`

		c := goquery.NewClassifier()
		first := c.Classify(html, "https://example.com")
		second := c.Classify(html, "https://example.com")

		assert.Equal(t, first, second)
	})
}
