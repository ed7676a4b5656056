package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fletchka/harvest/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategy_Try(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content", func(t *testing.T) {
		t.Parallel()

		prose := strings.Repeat("Dense article prose about incident response and postmortems. ", 10)
		html := `<html><head><title>Postmortems</title></head><body>
			<article><h1>Postmortems</h1><p>` + prose + `</p></article>
		</body></html>`

		cand, ok := trafilatura.NewStrategy().Try(html)

		require.True(t, ok)
		assert.Contains(t, cand.HTML, "incident response")
	})

	t.Run("declines empty input", func(t *testing.T) {
		t.Parallel()

		_, ok := trafilatura.NewStrategy().Try("")
		assert.False(t, ok)
	})
}
