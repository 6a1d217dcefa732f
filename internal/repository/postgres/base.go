package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/caresync/hms-api/pkg/errors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// WithTx executes a function within a transaction
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation; the storage constraint is the source of truth for every
// uniqueness invariant in the schema.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// conflictOr maps a unique violation to a Conflict error with the
// given message and anything else to Unexpected.
func conflictOr(err error, message string) error {
	if isUniqueViolation(err) {
		return apperrors.Conflict(message, err)
	}
	return apperrors.Unexpected(err)
}

// notFoundOr maps sql.ErrNoRows to a NotFound for the named resource
// and anything else to Unexpected.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource)
	}
	return apperrors.Unexpected(err)
}

// requireRow returns NotFound for the named resource when an update or
// delete touched zero rows.
func requireRow(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Unexpected(err)
	}
	if rows == 0 {
		return apperrors.NotFound(resource)
	}
	return nil
}
