package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgQuerier is the part of *pgxpool.Pool the blob store needs.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBlobs keeps blobs in the kv_store table as JSONB.
type PostgresBlobs struct {
	db     pgQuerier
	logger *logger.Logger
}

func NewPostgresBlobs(db pgQuerier, logger *logger.Logger) *PostgresBlobs {
	return &PostgresBlobs{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

func (r *PostgresBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return value, nil
}

func (r *PostgresBlobs) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	r.logger.Debug("blob stored", "key", key, "bytes", len(value))
	return nil
}

func (r *PostgresBlobs) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

var _ Blobs = (*PostgresBlobs)(nil)
