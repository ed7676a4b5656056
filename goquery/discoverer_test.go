package goquery_test

import (
	"testing"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkURLs(links []harvest.DiscoveredLink) []string {
	urls := make([]string, 0, len(links))
	for _, l := range links {
		urls = append(urls, l.URL)
	}
	return urls
}

func TestDiscoverer_FindArticleLinks(t *testing.T) {
	t.Parallel()

	t.Run("finds links in listing containers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="blog-list">
			<a href="/blog/first-post">First Post About Testing</a>
			<a href="/blog/second-post">Second Post About Shipping</a>
		</div></body></html>`

		d := goquery.NewDiscoverer()
		links, err := d.FindArticleLinks(html, "https://example.com/blog")

		require.NoError(t, err)
		urls := linkURLs(links)
		assert.Contains(t, urls, "https://example.com/blog/first-post")
		assert.Contains(t, urls, "https://example.com/blog/second-post")
	})

	t.Run("deduplicates across passes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="blog-list"><a href="/blog/only-post">The Only Post Worth Reading</a></div>
			<article><a href="/blog/only-post">The Only Post Worth Reading</a></article>
		</body></html>`

		d := goquery.NewDiscoverer()
		links, err := d.FindArticleLinks(html, "https://example.com/blog")

		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("skips offsite and booking links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="post-list">
			<a href="/blog/real-article-here">A Real Article Here</a>
			<a href="https://other.example.org/blog/elsewhere">Elsewhere Entirely Now</a>
			<a href="https://cal.com/founder/intro">Book a call</a>
		</div></body></html>`

		d := goquery.NewDiscoverer()
		links, err := d.FindArticleLinks(html, "https://example.com/blog")

		require.NoError(t, err)
		urls := linkURLs(links)
		assert.Contains(t, urls, "https://example.com/blog/real-article-here")
		assert.NotContains(t, urls, "https://other.example.org/blog/elsewhere")
		assert.NotContains(t, urls, "https://cal.com/founder/intro")
	})

	t.Run("accepts blog subdomain links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
			<a href="https://blog.example.com/blog/cross-host-post">Cross Host Post Title</a>
		</article></body></html>`

		d := goquery.NewDiscoverer()
		links, err := d.FindArticleLinks(html, "https://www.example.com/")

		require.NoError(t, err)
		assert.Contains(t, linkURLs(links), "https://blog.example.com/blog/cross-host-post")
	})

	t.Run("constructs urls from linkless preview cards", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="card" style="cursor:pointer">
			<h3>How We Rebuilt Search</h3>
			<p>A long description of the rebuild, covering indexing, ranking, and the rollout plan in detail.</p>
		</div></body></html>`

		d := goquery.NewDiscoverer()
		links, err := d.FindArticleLinks(html, "https://example.com/blog")

		require.NoError(t, err)
		require.NotEmpty(t, links)

		var constructed *harvest.DiscoveredLink
		for i := range links {
			if links[i].Constructed() {
				constructed = &links[i]
			}
		}
		require.NotNil(t, constructed)
		assert.Equal(t, "https://example.com/blog/how-we-rebuilt-search", constructed.URL)
	})

	t.Run("invalid base url", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDiscoverer()
		_, err := d.FindArticleLinks("<html></html>", "://not-a-url")

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func TestDiscoverer_FindRenderedLinks(t *testing.T) {
	t.Parallel()

	t.Run("collects rendered anchors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/blog/alpha-release">Alpha Release Notes</a>
			<a href="/blog/beta-release">Beta Release Notes</a>
			<a href="/blog/ga-release">GA Release Notes</a>
		</body></html>`

		d := goquery.NewDiscoverer()
		links, err := d.FindRenderedLinks(html, "https://example.com/blog")

		require.NoError(t, err)
		require.Len(t, links, 3)
		for _, l := range links {
			assert.Equal(t, harvest.SourceRendered, l.Source)
		}
	})

	t.Run("constructs urls from clickable containers when anchors are scarce", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div style="cursor: pointer"><h2>A Guide to the Future of Search</h2></div>
		</body></html>`

		d := goquery.NewDiscoverer()
		links, err := d.FindRenderedLinks(html, "https://app.example.com/blog")

		require.NoError(t, err)
		require.NotEmpty(t, links)
		assert.True(t, links[0].Constructed())
		assert.Equal(t, "https://app.example.com/blog/guide-future-search", links[0].URL)
	})
}
