package htmltomarkdown_test

import (
	"testing"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts article body markup", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Shipping Faster</h1><p>Small batches beat big launches.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Shipping Faster")
		assert.Contains(t, md, "Small batches beat big launches.")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>See the <a href="https://example.com/blog/full-post">full post</a>.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[full post](https://example.com/blog/full-post)")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Draft</li><li>Edit</li><li>Publish</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- Draft")
		assert.Contains(t, md, "- Publish")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
