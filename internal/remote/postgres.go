package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/dbx"
)

// OpenPostgres opens the remote snapshot database. The pgx stdlib driver
// must be registered by the importing binary.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PostgresSnapshotRepository stores whole-dataset snapshots, append-only,
// one row per push, owned by a user id.
type PostgresSnapshotRepository struct {
	db dbx.DBTX
}

func NewPostgresSnapshotRepository(db dbx.DBTX) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// EnsureSchema creates the snapshot table if absent. Idempotent; called once
// by the process entry point.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure snapshots schema: %w", err)
	}
	return nil
}

// Insert appends a new snapshot row for userID. Prior rows are never updated
// in place.
func (r *PostgresSnapshotRepository) Insert(ctx context.Context, userID string, data []byte) error {
	query := `INSERT INTO snapshots (id, user_id, data) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, data); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// LatestByUser returns the most recently created snapshot for userID, or
// common.ErrNotFound when the user has never pushed one.
func (r *PostgresSnapshotRepository) LatestByUser(ctx context.Context, userID string) ([]byte, error) {
	query := `SELECT data FROM snapshots WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no snapshot for user %s", common.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to select snapshot: %w", err)
	}
	return data, nil
}
