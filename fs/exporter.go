// Package fs provides file-based output for scrape exports.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fletchka/harvest"
)

// Ensure Exporter implements harvest.Exporter at compile time.
var _ harvest.Exporter = (*Exporter)(nil)

// Exporter writes an export as an indented JSON file.
type Exporter struct {
	path string
}

// NewExporter creates a new Exporter that writes to the given file path.
func NewExporter(path string) *Exporter {
	return &Exporter{path: path}
}

// Export marshals the export and writes it to disk. Parent directories
// are created as needed.
func (e *Exporter) Export(ctx context.Context, export *harvest.Export) error {
	if export == nil {
		return harvest.Errorf(harvest.EINVALID, "export required")
	}
	if export.TeamID == "" {
		return harvest.Errorf(harvest.EINVALID, "export team id required")
	}

	// The contract is a JSON object with items present even when empty.
	if export.Items == nil {
		export.Items = []harvest.ContentItem{}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(e.path, data, 0644)
}
