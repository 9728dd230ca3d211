package records

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pourlog/pourlog/internal/models"
)

// JSONFileRepository persists the pour collection as a single JSON blob,
// reusing the snapshot wire format. It is the DB-less alternative to the
// sqlite backend.
type JSONFileRepository struct {
	path string
}

func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{path: path}
}

// LoadAll reads the blob. A missing file is an empty collection, not an error.
func (r *JSONFileRepository) LoadAll(ctx context.Context) ([]models.PourRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return models.DecodeSnapshot(data)
}

// ReplaceAll rewrites the blob via a temp file and rename, so a failed write
// never truncates the previous state.
func (r *JSONFileRepository) ReplaceAll(ctx context.Context, records []models.PourRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := models.EncodeSnapshot(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".pours-*")
	if err != nil {
		return fmt.Errorf("temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
