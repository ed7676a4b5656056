package feed_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverer_FindFeedLinks(t *testing.T) {
	t.Parallel()

	t.Run("reads advertised rss feed", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/blog/rss.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel>
  <title>Engineering Blog</title>
  <item><title>Zero Downtime Deploys</title><link>%s/blog/zero-downtime-deploys</link></item>
  <item><title>Cutting Cold Starts</title><link>%s/blog/cutting-cold-starts</link></item>
</channel></rss>`, server.URL, server.URL)
		})

		html := fmt.Sprintf(`<html><head>
			<link rel="alternate" type="application/rss+xml" href="%s/blog/rss.xml">
		</head><body></body></html>`, server.URL)

		d := feed.NewDiscoverer()
		links, err := d.FindFeedLinks(context.Background(), html, server.URL+"/blog")

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, server.URL+"/blog/zero-downtime-deploys", links[0].URL)
		assert.Equal(t, "Zero Downtime Deploys", links[0].Text)
		assert.Equal(t, harvest.SourceFeed, links[0].Source)
	})

	t.Run("skips unreachable feeds", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		d := feed.NewDiscoverer()
		links, err := d.FindFeedLinks(context.Background(), "<html></html>", server.URL)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("invalid base url", func(t *testing.T) {
		t.Parallel()

		d := feed.NewDiscoverer()
		_, err := d.FindFeedLinks(context.Background(), "<html></html>", "://bad")

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
