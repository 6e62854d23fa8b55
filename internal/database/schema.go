package database

import (
	"context"
	"fmt"

	nuts "github.com/vaudience/go-nuts"
)

var schemas = map[Dialect][]string{
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS samples (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			utc_offset INTEGER NOT NULL DEFAULT 0,
			v0 DOUBLE PRECISION,
			v1 DOUBLE PRECISION
		)`,
	},
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			utc_offset INTEGER NOT NULL DEFAULT 0,
			v0 REAL,
			v1 REAL
		)`,
	},
}

// EnsureSchema creates the samples table if it does not exist yet
func (d *DB) EnsureSchema(ctx context.Context) error {
	queries, ok := schemas[d.dialect]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", d.dialect)
	}

	for _, query := range queries {
		if _, err := d.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	nuts.L.Infof("[Database] Schema ready (%s)", d.dialect)
	return nil
}
