package mock

import (
	"context"

	"github.com/fletchka/harvest"
)

var _ harvest.ItemService = (*ItemService)(nil)

// ItemService is a mock implementation of harvest.ItemService.
type ItemService struct {
	CreateItemFn       func(ctx context.Context, runID string, item *harvest.ContentItem) error
	FindItemsByRunFn   func(ctx context.Context, runID string) ([]*harvest.ContentItem, error)
	DeleteItemsByRunFn func(ctx context.Context, runID string) error
}

func (s *ItemService) CreateItem(ctx context.Context, runID string, item *harvest.ContentItem) error {
	return s.CreateItemFn(ctx, runID, item)
}

func (s *ItemService) FindItemsByRun(ctx context.Context, runID string) ([]*harvest.ContentItem, error) {
	return s.FindItemsByRunFn(ctx, runID)
}

func (s *ItemService) DeleteItemsByRun(ctx context.Context, runID string) error {
	return s.DeleteItemsByRunFn(ctx, runID)
}

var _ harvest.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of harvest.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, export *harvest.Export) error
}

func (e *Exporter) Export(ctx context.Context, export *harvest.Export) error {
	return e.ExportFn(ctx, export)
}
