// Package export writes snapshot files for hand-off to external share or
// backup mechanisms.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pourlog/pourlog/internal/store"
)

// Exporter writes the store's snapshot serialization to timestamped files
// in a target directory.
type Exporter struct {
	store *store.Store
	dir   string
}

func New(st *store.Store, dir string) *Exporter {
	return &Exporter{store: st, dir: dir}
}

// WriteFile serializes the whole collection and writes it to a fresh file,
// returning the file's path. The bytes are exactly the store's snapshot
// form, so the file round-trips through Import.
func (e *Exporter) WriteFile() (string, error) {
	data, err := e.store.Export()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", e.dir, err)
	}

	name := fmt.Sprintf("pours-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
