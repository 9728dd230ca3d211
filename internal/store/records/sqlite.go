// Package records provides the durable backends for the pour collection.
//
// Durability here is deliberately dumb: the in-memory collection is the single
// source of truth during a session, so a backend only ever loads the whole
// collection once at startup and rewrites it wholesale after each mutation.
package records

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/pourlog/pourlog/internal/dbx"
	"github.com/pourlog/pourlog/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// InitDatabase opens the local database and applies schema migrations.
// Creating the schema is idempotent; the process entry point calls this once
// before the store is constructed. The sqlite driver must be registered by
// the importing binary (modernc.org/sqlite).
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// SQLiteRepository persists the pour collection in a local sqlite table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// LoadAll reads the whole collection in stored order. Called once at startup
// to rehydrate the in-memory collection.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]models.PourRecord, error) {
	query := `SELECT id, date_time, photo_url, pattern, blurhash, rating, notes FROM pours ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select pours: %w", err)
	}
	defer rows.Close()

	var result []models.PourRecord
	for rows.Next() {
		var item models.PourRecord
		var photoURL, pattern, blurhash, notes sql.NullString
		if err := rows.Scan(&item.ID, &item.DateTime, &photoURL, &pattern, &blurhash, &item.Rating, &notes); err != nil {
			return nil, err
		}
		item.Photo = models.ParsePhotoRef(photoURL.String)
		item.Pattern = pattern.String
		item.Blurhash = blurhash.String
		item.Notes = notes.String
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceAll rewrites the table to match records exactly, in one transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, records []models.PourRecord) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pours`); err != nil {
			return fmt.Errorf("failed to clear pours: %w", err)
		}

		query := `INSERT INTO pours (id, date_time, photo_url, pattern, blurhash, rating, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		for _, rec := range records {
			_, err := tx.ExecContext(ctx, query,
				rec.ID, rec.DateTime, rec.Photo.String(), rec.Pattern, rec.Blurhash, rec.Rating, rec.Notes)
			if err != nil {
				return fmt.Errorf("failed to insert pour %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}
