package sqlite_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func validItem(title string) *harvest.ContentItem {
	return &harvest.ContentItem{
		Title:       title,
		Content:     strings.Repeat("Body text long enough to pass the minimum content floor. ", 3),
		ContentType: harvest.ContentTypeBlog,
		SourceURL:   "https://example.com/blog/" + strings.ToLower(title),
		Author:      "Jordan Writer",
	}
}

func TestItemService_CreateItem(t *testing.T) {
	t.Parallel()

	t.Run("persists and reads back", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewItemService(mustOpenDB(t))
		ctx := context.Background()

		item := validItem("First")
		require.NoError(t, s.CreateItem(ctx, "run-1", item))

		got, err := s.FindItemsByRun(ctx, "run-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, item.Title, got[0].Title)
		assert.Equal(t, item.Content, got[0].Content)
		assert.Equal(t, harvest.ContentTypeBlog, got[0].ContentType)
		assert.Equal(t, item.SourceURL, got[0].SourceURL)
		assert.Equal(t, "Jordan Writer", got[0].Author)
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewItemService(mustOpenDB(t))

		err := s.CreateItem(context.Background(), "run-1", &harvest.ContentItem{Title: "", Content: "too short"})
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects empty run id", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewItemService(mustOpenDB(t))

		err := s.CreateItem(context.Background(), "", validItem("Orphan"))
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func TestItemService_FindItemsByRun(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewItemService(mustOpenDB(t))
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			require.NoError(t, s.CreateItem(ctx, "run-1", validItem(fmt.Sprintf("Post %d", i))))
		}

		got, err := s.FindItemsByRun(ctx, "run-1")
		require.NoError(t, err)
		require.Len(t, got, 5)
		for i, item := range got {
			assert.Equal(t, fmt.Sprintf("Post %d", i), item.Title)
		}
	})

	t.Run("runs are isolated", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewItemService(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, s.CreateItem(ctx, "run-a", validItem("A")))
		require.NoError(t, s.CreateItem(ctx, "run-b", validItem("B")))

		got, err := s.FindItemsByRun(ctx, "run-a")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Title)
	})

	t.Run("unknown run returns no items", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewItemService(mustOpenDB(t))

		got, err := s.FindItemsByRun(context.Background(), "missing")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestItemService_DeleteItemsByRun(t *testing.T) {
	t.Parallel()

	s := sqlite.NewItemService(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateItem(ctx, "run-1", validItem("Doomed")))
	require.NoError(t, s.CreateItem(ctx, "run-2", validItem("Spared")))

	require.NoError(t, s.DeleteItemsByRun(ctx, "run-1"))

	gone, err := s.FindItemsByRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := s.FindItemsByRun(ctx, "run-2")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
