package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type Connection struct {
	db     *sql.DB
	logger *logger.Logger
	config *Config
}

func New(logger *logger.Logger, config *Config) (*Connection, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sqlite config: %w", err)
	}
	return &Connection{
		config: config,
		logger: logger.Component("database/sqlite"),
	}, nil
}

// Connect opens the database file and makes sure the schema exists.
func (c *Connection) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite", c.config.DSN())
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// a single writer matches the store's last-write-wins model
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create sqlite schema: %w", err)
	}

	c.db = db
	c.logger.Info("sqlite database opened", "path", c.config.Path)
	return nil
}

func (c *Connection) DB() *sql.DB {
	if c.db == nil {
		panic("sqlite connection not established, call Connect() first")
	}
	return c.db
}

func (c *Connection) Close() {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Warn("failed to close sqlite database", "error", err)
		}
	}
}

func (c *Connection) Health(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("sqlite database not initialized")
	}
	return c.db.PingContext(ctx)
}
