// FilePath: internal/database/database.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cpbotha/dbwriter/internal/config"
	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	nuts "github.com/vaudience/go-nuts"
)

// Dialect names the SQL flavor spoken by the connection
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}

// Repository represents common repository operations
type Repository interface {
	BeginTx(ctx context.Context) (Transaction, error)
}

func init() {
	// glebarez/go-sqlite registers as "sqlite", which sqlx does not know by default
	sqlx.BindDriver(string(DialectSQLite), sqlx.QUESTION)
}

// DB wraps a sqlx connection pool for either supported dialect
type DB struct {
	db      *sqlx.DB
	dialect Dialect
}

// Open connects to the backend selected by cfg.Driver and verifies the connection
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var dialect Dialect
	switch cfg.Driver {
	case config.DriverPostgres:
		dialect = DialectPostgres
	case config.DriverSQLite:
		dialect = DialectSQLite
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(string(dialect), cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// a single connection serializes writers and keeps :memory: databases shared
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to %s database: %w", dialect, err)
	}

	nuts.L.Infof("[Database] Connected to %s backend", dialect)
	return &DB{db: db, dialect: dialect}, nil
}

// GetDB returns the underlying pool
func (d *DB) GetDB() *sqlx.DB {
	return d.db
}

// Dialect returns the SQL flavor of the connection
func (d *DB) Dialect() Dialect {
	return d.dialect
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// BeginTx starts a transaction on a pooled connection
func (d *DB) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Rebind converts a query written with ? placeholders to the dialect's bindvars
func (d *DB) Rebind(query string) string {
	return d.db.Rebind(query)
}
