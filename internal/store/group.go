package store

import (
	"sort"
	"time"

	"github.com/pourlog/pourlog/internal/models"
)

// DayGroup is one calendar day's worth of records.
type DayGroup struct {
	// Day is midnight of the calendar day in the grouping location.
	Day time.Time

	Records []models.PourRecord
}

// GroupByDay partitions records into calendar-day buckets of their DateTime,
// most recent day first, preserving the given within-day order. It is a pure
// function of its input, recomputed on every call; the result shares record
// values with the input but never aliases its slice.
//
// A nil loc groups in the system's local time zone.
func GroupByDay(records []models.PourRecord, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}

	index := make(map[time.Time]int)
	groups := make([]DayGroup, 0)

	for _, r := range records {
		t := time.UnixMilli(r.DateTime).In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)

		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Day.After(groups[j].Day)
	})
	return groups
}
