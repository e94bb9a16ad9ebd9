package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pressly/goose/v3"

	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/db/dsn"
)

const migrationTable = "goose_db_version"

var ErrUnsupportedMigration = errors.New("unsupported migration")

type migrateFunc func(ctx context.Context, db *sql.DB, dir string) error

// Migrator applies goose migrations against the configured database.
type Migrator interface {
	MigrateToLatest(ctx context.Context, downgrade bool) error
	MigrateTo(ctx context.Context, version int64, downgrade bool) error
}

type migrator struct {
	dsn string
	dir string
}

func NewMigrator(cfg *config.Config) (Migrator, error) {
	dsn, err := dsn.FromDBConfig(cfg.Database)
	if err != nil {
		return nil, err
	}

	return &migrator{
		dsn: dsn,
		dir: cfg.Database.Migrator.Dir,
	}, nil
}

// MigrateToLatest runs every pending migration, or with downgrade true
// rolls back the most recent one.
func (m *migrator) MigrateToLatest(ctx context.Context, downgrade bool) error {
	return m.run(ctx, func(ctx context.Context, db *sql.DB, dir string) error {
		if downgrade {
			return goose.DownContext(ctx, db, dir)
		}

		return goose.UpContext(ctx, db, dir)
	})
}

// MigrateTo migrates up or down until the database is at the given version.
func (m *migrator) MigrateTo(ctx context.Context, version int64, downgrade bool) error {
	return m.run(ctx, func(ctx context.Context, db *sql.DB, dir string) error {
		if downgrade {
			return goose.DownToContext(ctx, db, dir, version)
		}

		return goose.UpToContext(ctx, db, dir, version)
	})
}

func (m *migrator) run(ctx context.Context, f migrateFunc) error {
	db, err := goose.OpenDBWithDriver(string(goose.DialectPostgres), m.dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetTableName(migrationTable)

	return f(ctx, db, m.dir)
}
