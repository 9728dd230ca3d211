package cli

import (
	"context"
	"fmt"
	"sort"
)

// Stat prints collection statistics: totals, per-pattern counts, the average
// rating, and how many photos still await upload.
func (a *App) Stat(ctx context.Context) error {
	records := a.store.All()
	if len(records) == 0 {
		printlnFn("No pours yet")
		return nil
	}

	patterns := map[string]int{}
	ratingSum := 0
	pendingUploads := 0
	for _, rec := range records {
		if rec.Pattern != "" {
			patterns[rec.Pattern]++
		}
		ratingSum += rec.Rating
		if rec.Photo.IsLocal() {
			pendingUploads++
		}
	}

	printlnFn("Pours:         ", len(records))
	printlnFn("Average rating:", fmt.Sprintf("%.1f", float64(ratingSum)/float64(len(records))))
	printlnFn("Pending upload:", pendingUploads)

	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printlnFn(fmt.Sprintf("  %-12s %d", name, patterns[name]))
	}
	return nil
}
