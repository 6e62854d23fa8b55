package sqldb

import (
	"context"

	"github.com/cpbotha/dbwriter/internal/database"
	"github.com/cpbotha/dbwriter/internal/errors"
)

type BaseRepo struct {
	db *database.DB
}

var _ database.Repository = (*BaseRepo)(nil)

func (r *BaseRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}
func (r *BaseRepo) Commit(tx database.Transaction) error {
	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("failed to commit transaction", err)
	}
	return nil
}
func (r *BaseRepo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return errors.NewDatabaseError("failed to ping database", err)
	}
	return nil
}
