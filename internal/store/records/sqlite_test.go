package records

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/pourlog/pourlog/internal/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleRecords() []models.PourRecord {
	return []models.PourRecord{
		{
			ID:       "a1",
			DateTime: 1756400000000,
			Photo:    models.RemotePhoto("https://cdn.example.com/u/1/a.jpg"),
			Rating:   4,
			Notes:    "syrupy",
			Pattern:  "Tulip",
			Blurhash: "LEHV6nWB2yk8pyo0adR*.7kCMdnj",
		},
		{
			ID:       "b2",
			DateTime: 1756300000000,
			Photo:    models.LocalPhoto("b.jpg"),
			Rating:   2,
			Blurhash: "L6Pj0^jE.AyE_3t7t7R**0o#DgR4",
		},
	}
}

func TestInitDatabase_Idempotent(t *testing.T) {
	// Opening an already-migrated database re-runs migrations as a no-op.
	dsn := filepath.Join(t.TempDir(), "pours.db")
	ctx := context.Background()

	db1, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(db1).ReplaceAll(ctx, sampleRecords()))
	require.NoError(t, db1.Close())

	db2, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db2.Close() })

	out, err := NewSQLiteRepository(db2).LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	in := sampleRecords()
	require.NoError(t, r.ReplaceAll(ctx, in))

	out, err := r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSQLiteRepository_ReplaceAllOverwrites(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, sampleRecords()))
	require.NoError(t, r.ReplaceAll(ctx, sampleRecords()[:1]))

	out, err := r.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)

	require.NoError(t, r.ReplaceAll(ctx, nil))
	out, err = r.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSQLiteRepository_PreservesOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	in := []models.PourRecord{
		{ID: "newest", DateTime: 1, Rating: 1},
		{ID: "middle", DateTime: 99, Rating: 1},
		{ID: "oldest", DateTime: 50, Rating: 1},
	}
	require.NoError(t, r.ReplaceAll(ctx, in))

	out, err := r.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	// Stored order follows insertion, not DateTime.
	assert.Equal(t, "newest", out[0].ID)
	assert.Equal(t, "middle", out[1].ID)
	assert.Equal(t, "oldest", out[2].ID)
}
