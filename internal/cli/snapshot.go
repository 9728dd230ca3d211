package cli

import (
	"context"
	"os"
)

// Export writes the whole collection to a timestamped snapshot file in the
// configured export directory.
func (a *App) Export(ctx context.Context) error {
	path, err := a.exporter.WriteFile()
	if err != nil {
		printlnFn("Export failed:", err.Error())
		return err
	}
	printlnFn("Exported to", path)
	return nil
}

// Import replaces the local collection with the contents of a snapshot file,
// after confirmation. Legacy field spellings in the file are accepted.
func (a *App) Import(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Snapshot file path", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input failed", "error", err)
		return err
	}

	if !Confirm(a.reader, "Replace all local pours with the file contents?", os.Stdout) {
		printlnFn("Cancelled")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Could not read file:", err.Error())
		return err
	}

	if err := a.store.Import(ctx, data); err != nil {
		printlnFn("Import failed:", err.Error())
		return err
	}
	printlnFn("Imported", path)
	return nil
}
