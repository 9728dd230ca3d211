package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pourlog/pourlog/internal/models"
)

func msAt(t *testing.T, loc *time.Location, value string) int64 {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	require.NoError(t, err)
	return ts.UnixMilli()
}

func TestGroupByDay(t *testing.T) {
	loc := time.UTC

	// Collection order is creation order (newest first), which does not
	// follow DateTime because DateTime is user-editable.
	records := []models.PourRecord{
		{ID: "a", DateTime: msAt(t, loc, "2026-08-30 08:15"), Rating: 3},
		{ID: "b", DateTime: msAt(t, loc, "2026-08-28 17:40"), Rating: 4},
		{ID: "c", DateTime: msAt(t, loc, "2026-08-30 21:05"), Rating: 2},
		{ID: "d", DateTime: msAt(t, loc, "2026-08-29 07:00"), Rating: 5},
	}

	groups := GroupByDay(records, loc)
	require.Len(t, groups, 3)

	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, loc), groups[0].Day)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, loc), groups[1].Day)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, loc), groups[2].Day)

	// Same-day records share a bucket in input order.
	ids := func(g DayGroup) []string {
		out := make([]string, 0, len(g.Records))
		for _, r := range g.Records {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"a", "c"}, ids(groups[0]))
	assert.Equal(t, []string{"d"}, ids(groups[1]))
	assert.Equal(t, []string{"b"}, ids(groups[2]))
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil, time.UTC))
}

func TestGroupByDay_DayBoundary(t *testing.T) {
	loc := time.UTC
	records := []models.PourRecord{
		{ID: "lastnight", DateTime: msAt(t, loc, "2026-08-29 23:59")},
		{ID: "midnight", DateTime: msAt(t, loc, "2026-08-30 00:00")},
	}

	groups := GroupByDay(records, loc)
	require.Len(t, groups, 2)
	assert.Equal(t, "midnight", groups[0].Records[0].ID)
	assert.Equal(t, "lastnight", groups[1].Records[0].ID)
}
