package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
)

// SQLiteBlobs keeps blobs in a local SQLite kv_store table.
type SQLiteBlobs struct {
	db     *sql.DB
	logger *logger.Logger
}

func NewSQLiteBlobs(db *sql.DB, logger *logger.Logger) *SQLiteBlobs {
	return &SQLiteBlobs{
		db:     db,
		logger: logger.Component("repository/sqlite"),
	}
}

func (r *SQLiteBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return []byte(value), nil
}

func (r *SQLiteBlobs) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key)
		DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	r.logger.Debug("blob stored", "key", key, "bytes", len(value))
	return nil
}

func (r *SQLiteBlobs) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

var _ Blobs = (*SQLiteBlobs)(nil)
