package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/ZertGraf/team-feedback/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
)

type MigrationConfig struct {
	Timeout   time.Duration `json:"timeout"`
	TableName string        `json:"table_name"`
	Enabled   bool          `json:"enabled"`
}

// Migrator applies the embedded kv_store schema with tern.
type Migrator struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
	config *MigrationConfig
}

func NewMigrator(pool *pgxpool.Pool, config *MigrationConfig, logger *logger.Logger) *Migrator {
	return &Migrator{
		pool:   pool,
		logger: logger.Component("postgres/migrator"),
		config: config,
	}
}

func (m *Migrator) RunMigrations(ctx context.Context) error {
	if !m.config.Enabled {
		m.logger.Info("migrations disabled, skipping")
		return nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	defer cancel()

	return m.withMigrator(ctx, func(migrator *migrate.Migrator) error {
		if err := migrator.LoadMigrations(migrations.MigrationFiles); err != nil {
			return fmt.Errorf("load migrations: %w", err)
		}

		currentVersion, err := migrator.GetCurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("get current version: %w", err)
		}

		latest := int32(len(migrator.Migrations))
		if currentVersion >= latest {
			m.logger.Info("database schema up to date",
				"current_version", currentVersion,
				"latest_version", latest)
			return nil
		}

		m.logger.Info("applying database migrations",
			"current_version", currentVersion,
			"target_version", latest,
			"pending_migrations", latest-currentVersion)

		if err = migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}

		finalVersion, err := migrator.GetCurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("get final version: %w", err)
		}

		m.logger.Info("migrations completed successfully",
			"from_version", currentVersion,
			"to_version", finalVersion,
			"duration", time.Since(start))
		return nil
	})
}

func (m *Migrator) GetCurrentVersion(ctx context.Context) (int32, error) {
	var version int32
	err := m.withMigrator(ctx, func(migrator *migrate.Migrator) error {
		var err error
		version, err = migrator.GetCurrentVersion(ctx)
		return err
	})
	return version, err
}

func (m *Migrator) Health(ctx context.Context) error {
	if _, err := m.GetCurrentVersion(ctx); err != nil {
		return fmt.Errorf("migration health check failed: %w", err)
	}
	return nil
}

func (m *Migrator) withMigrator(ctx context.Context, fn func(*migrate.Migrator) error) error {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	migrator, err := migrate.NewMigrator(ctx, conn.Conn(), m.config.TableName)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	return fn(migrator)
}
