package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fletchka/harvest"
	main "github.com/fletchka/harvest/cmd/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("parses sources with defaults applied", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
team_id: team-1
output: out/export.json
sources:
  - url: https://example.com/blog
  - url: /books/deep-work.pdf
    source_type: pdf
    title: Deep Work
    author: Cal Newport
    chunk_size: 2000
`)

		cfg, err := main.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "team-1", cfg.TeamID)
		assert.Equal(t, "out/export.json", cfg.Output)
		require.Len(t, cfg.Sources, 2)

		web := cfg.Sources[0]
		assert.Equal(t, harvest.SourceTypeWeb, web.Type)
		assert.Equal(t, harvest.DefaultMaxArticles, web.MaxArticles)
		assert.Equal(t, harvest.DefaultDelay, web.Delay)

		book := cfg.Sources[1]
		assert.Equal(t, harvest.SourceTypePDF, book.Type)
		assert.Equal(t, "Deep Work", book.Title)
		assert.Equal(t, 2000, book.ChunkSize)
		assert.Equal(t, harvest.DefaultChunkOverlap, book.ChunkOverlap)
	})

	t.Run("parses human-readable delays", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
team_id: team-1
sources:
  - url: https://example.com/blog
    delay: 2s
`)

		cfg, err := main.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, cfg.Sources[0].Delay)
	})

	t.Run("rejects bad delay", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
team_id: team-1
sources:
  - url: https://example.com/blog
    delay: soon
`)

		_, err := main.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects missing team id", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
sources:
  - url: https://example.com/blog
`)

		_, err := main.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects empty source list", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "team_id: team-1\n")

		_, err := main.LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("rejects unknown source type", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
team_id: team-1
sources:
  - url: ftp://example.com/file
    source_type: ftp
`)

		_, err := main.LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
