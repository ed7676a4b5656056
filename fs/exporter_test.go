package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes indented json with stable key order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "export.json")
		e := fs.NewExporter(path)

		export := &harvest.Export{
			TeamID: "team-1",
			Items: []harvest.ContentItem{
				{
					Title:       "A Post",
					Content:     "Body",
					ContentType: harvest.ContentTypeBlog,
					SourceURL:   "https://example.com/blog/a-post",
					Author:      "Jordan Writer",
				},
			},
		}

		require.NoError(t, e.Export(context.Background(), export))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got harvest.Export
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "team-1", got.TeamID)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "A Post", got.Items[0].Title)

		text := string(data)
		assert.Less(t, strings.Index(text, `"title"`), strings.Index(text, `"content"`))
		assert.Less(t, strings.Index(text, `"content"`), strings.Index(text, `"content_type"`))
		assert.Less(t, strings.Index(text, `"content_type"`), strings.Index(text, `"source_url"`))
		assert.Less(t, strings.Index(text, `"source_url"`), strings.Index(text, `"author"`))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "deep", "export.json")
		e := fs.NewExporter(path)

		err := e.Export(context.Background(), &harvest.Export{TeamID: "team-1"})
		require.NoError(t, err)

		_, err = os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("empty item list exports as an array", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "export.json")
		e := fs.NewExporter(path)

		require.NoError(t, e.Export(context.Background(), &harvest.Export{TeamID: "team-1"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"items": []`)
	})

	t.Run("rejects missing team id", func(t *testing.T) {
		t.Parallel()

		e := fs.NewExporter(filepath.Join(t.TempDir(), "export.json"))

		err := e.Export(context.Background(), &harvest.Export{})
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
