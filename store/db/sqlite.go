package db

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/fajrulhm/perpus-admin/config"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// schemaVersion is bumped together with migration/LATEST_SCHEMA.sql.
const schemaVersion = "0.1.0"

type DB struct {
	*sql.DB
}

func NewDB() (*DB, error) {
	if config.Opts.DSN == "" {
		return nil, errors.New("database path is required")
	}

	d, err := sql.Open("sqlite", config.Opts.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "open session database")
	}
	return &DB{d}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

const latestSchemaFileName = "migration/LATEST_SCHEMA.sql"

// Migrate applies the latest schema. The schema is idempotent (CREATE TABLE
// IF NOT EXISTS), so there is no version chain to walk; the applied version
// is still recorded in migration_history.
func (d *DB) Migrate(ctx context.Context) error {
	buf, err := fs.ReadFile(migrationFS, latestSchemaFileName)
	if err != nil {
		return errors.Wrap(err, "read latest schema file")
	}
	if _, err := d.ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "apply latest schema")
	}
	if err := d.UpsertMigrationHistory(ctx, schemaVersion); err != nil {
		return errors.Wrap(err, "upsert migration history")
	}
	return nil
}
