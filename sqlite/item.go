package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fletchka/harvest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ harvest.ItemService = (*ItemService)(nil)

// ItemService implements harvest.ItemService using SQLite.
type ItemService struct {
	db *DB
}

// NewItemService creates a new ItemService.
func NewItemService(db *DB) *ItemService {
	return &ItemService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateItem stores a new item under a run. Items keep their insertion
// order within the run.
func (s *ItemService) CreateItem(ctx context.Context, runID string, item *harvest.ContentItem) error {
	if runID == "" {
		return harvest.Errorf(harvest.EINVALID, "run id required")
	}
	if err := item.Validate(); err != nil {
		return err
	}

	var position int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position) + 1, 0) FROM items WHERE run_id = ?
	`, runID).Scan(&position)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (id, run_id, position, title, content, content_type, source_url, author, user_id, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), runID, position, item.Title, item.Content, string(item.ContentType),
		item.SourceURL, item.Author, item.UserID, hashContent(item.Content),
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindItemsByRun retrieves all items for a run in insertion order.
func (s *ItemService) FindItemsByRun(ctx context.Context, runID string) ([]*harvest.ContentItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, content, content_type, source_url, author, user_id
		FROM items
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*harvest.ContentItem
	for rows.Next() {
		var item harvest.ContentItem
		var contentType string

		if err := rows.Scan(&item.Title, &item.Content, &contentType,
			&item.SourceURL, &item.Author, &item.UserID); err != nil {
			return nil, err
		}
		item.ContentType = harvest.ContentType(contentType)

		items = append(items, &item)
	}

	return items, rows.Err()
}

// DeleteItemsByRun removes all items for a run.
func (s *ItemService) DeleteItemsByRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE run_id = ?", runID)
	return err
}
