package db

import (
	"context"
	"time"
)

type MigrationHistory struct {
	Version   string
	CreatedTs int64
}

func (d *DB) UpsertMigrationHistory(ctx context.Context, version string) error {
	stmt := `
		INSERT INTO migration_history (version, created_ts)
		VALUES (?, ?)
		ON CONFLICT(version) DO UPDATE SET version = EXCLUDED.version
	`
	_, err := d.ExecContext(ctx, stmt, version, time.Now().Unix())
	return err
}

func (d *DB) FindMigrationHistoryList(ctx context.Context) ([]*MigrationHistory, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT version, created_ts
		FROM migration_history
		ORDER BY created_ts DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*MigrationHistory{}
	for rows.Next() {
		var h MigrationHistory
		if err := rows.Scan(&h.Version, &h.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
