package harvest_test

import (
	"testing"
	"time"

	"github.com/fletchka/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts web and pdf sources", func(t *testing.T) {
		t.Parallel()

		web := harvest.Source{URL: "https://example.com/blog", Type: harvest.SourceTypeWeb}
		require.NoError(t, web.Validate())

		pdf := harvest.Source{URL: "/books/a.pdf", Type: harvest.SourceTypePDF}
		require.NoError(t, pdf.Validate())
	})

	t.Run("requires a URL", func(t *testing.T) {
		t.Parallel()

		src := harvest.Source{Type: harvest.SourceTypeWeb}
		err := src.Validate()
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		t.Parallel()

		src := harvest.Source{URL: "ftp://example.com", Type: "ftp"}
		err := src.Validate()
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func TestSource_WithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills zero values", func(t *testing.T) {
		t.Parallel()

		src := harvest.Source{URL: "https://example.com/blog"}.WithDefaults()

		assert.Equal(t, harvest.SourceTypeWeb, src.Type)
		assert.Equal(t, harvest.DefaultMaxArticles, src.MaxArticles)
		assert.Equal(t, harvest.DefaultDelay, src.Delay)
		assert.Equal(t, harvest.DefaultChunkSize, src.ChunkSize)
		assert.Equal(t, harvest.DefaultChunkOverlap, src.ChunkOverlap)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		t.Parallel()

		src := harvest.Source{
			URL:         "https://example.com/blog",
			MaxArticles: 5,
			Delay:       3 * time.Second,
		}.WithDefaults()

		assert.Equal(t, 5, src.MaxArticles)
		assert.Equal(t, 3*time.Second, src.Delay)
	})
}

func TestDiscoveredLink_Constructed(t *testing.T) {
	t.Parallel()

	guessed := harvest.DiscoveredLink{URL: "https://example.com/blog/guess", Source: harvest.SourceConstructed}
	assert.True(t, guessed.Constructed())

	real := harvest.DiscoveredLink{URL: "https://example.com/blog/real", Source: harvest.SourcePattern}
	assert.False(t, real.Constructed())
}
