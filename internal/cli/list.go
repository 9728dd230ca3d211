package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/store"
)

// List prints every pour, grouped by calendar day, newest day first.
func (a *App) List(ctx context.Context) error {
	groups := store.GroupByDay(a.store.All(), time.Local)
	if len(groups) == 0 {
		printlnFn("No pours yet")
		return nil
	}

	for _, g := range groups {
		printlnFn(g.Day.Format("Mon, 2 Jan 2006"))
		for _, rec := range g.Records {
			when := time.UnixMilli(rec.DateTime).In(time.Local).Format("15:04")
			line := fmt.Sprintf("  %s  %s  %-12s %s", rec.ID, when, rec.Pattern, ratingStars(rec.Rating))
			printlnFn(line)
		}
	}
	return nil
}

// Show prompts for an ID and prints the full record, including photo file
// details when the photo is stored locally.
func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Pour ID", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input failed", "error", err)
		return err
	}

	for _, rec := range a.store.All() {
		if rec.ID != id {
			continue
		}
		printlnFn("ID:      ", rec.ID)
		printlnFn("When:    ", time.UnixMilli(rec.DateTime).In(time.Local).Format(time.RFC1123))
		printlnFn("Rating:  ", ratingStars(rec.Rating))
		printlnFn("Pattern: ", rec.Pattern)
		printlnFn("Photo:   ", rec.Photo.String())
		if rec.Blurhash != "" {
			printlnFn("Blurhash:", rec.Blurhash)
		}
		if rec.Notes != "" {
			printlnFn("Notes:   ", rec.Notes)
		}

		if rec.Photo.IsLocal() {
			info, err := a.dir.Stat(rec.Photo)
			switch {
			case errors.Is(err, common.ErrNotFound):
				printlnFn("File:     missing from photo directory")
			case err != nil:
				return err
			default:
				printlnFn("File:    ", fmt.Sprintf("%d bytes, modified %s", info.SizeBytes, info.ModifiedAt.Format(time.RFC1123)))
			}
		}
		return nil
	}

	printlnFn("No pour with ID", id)
	return fmt.Errorf("%w: pour %s", common.ErrNotFound, id)
}

func ratingStars(n int) string {
	stars := ""
	for i := 0; i < 5; i++ {
		if i < n {
			stars += "★"
		} else {
			stars += "☆"
		}
	}
	return stars
}
