package readability_test

import (
	"strings"
	"testing"

	"github.com/fletchka/harvest/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategy_Try(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content", func(t *testing.T) {
		t.Parallel()

		prose := strings.Repeat("Readable article prose about shipping software in small batches. ", 10)
		html := `<html><head><title>Shipping</title></head><body>
			<nav>Home About</nav>
			<article><h1>Shipping</h1><p>` + prose + `</p></article>
		</body></html>`

		cand, ok := readability.NewStrategy().Try(html)

		require.True(t, ok)
		assert.Contains(t, cand.HTML, "small batches")
	})

	t.Run("declines empty input", func(t *testing.T) {
		t.Parallel()

		_, ok := readability.NewStrategy().Try("   ")
		assert.False(t, ok)
	})
}
