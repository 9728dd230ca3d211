package cli

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/pourlog/pourlog/internal/models"
	"github.com/pourlog/pourlog/internal/store"
)

// Add collects the fields of a new pour interactively and persists it.
// The photo path is copied into the managed directory and enriched with a
// preview hash before the record is committed.
func (a *App) Add(ctx context.Context) error {
	photo, err := GetSimpleText(a.reader, "Photo path", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input failed", "error", err)
		return err
	}

	ratingText, err := GetSimpleText(a.reader, "Rating (1-5)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input failed", "error", err)
		return err
	}
	rating, err := strconv.Atoi(strings.TrimSpace(ratingText))
	if err != nil {
		printlnFn("Rating must be a number between 1 and 5")
		return err
	}

	pattern, err := GetSimpleText(a.reader, "Pattern ("+strings.Join(models.KnownPatterns, ", ")+")", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input failed", "error", err)
		return err
	}

	notes, err := GetMultiline(a.reader, "Notes (double Enter to finish):", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input failed", "error", err)
		return err
	}

	id, err := a.store.Create(ctx, store.Draft{
		PhotoURL: photo,
		Rating:   rating,
		Pattern:  pattern,
		Notes:    notes,
	})
	if err != nil {
		printlnFn("Could not add pour:", err.Error())
		return err
	}
	printlnFn("Added pour", id)
	return nil
}
