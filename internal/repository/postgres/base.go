package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pq error codes translated at the repository boundary
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	// ErrDuplicate reports a uniqueness violation (e.g. duplicate email).
	ErrDuplicate = errors.New("duplicate row")
	// ErrInvalidReference reports a foreign-key violation on insert/update.
	ErrInvalidReference = errors.New("referenced row does not exist")
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

// buildPatchQuery assembles an UPDATE for the accumulated SET clauses.
// Callers guarantee at least one clause; empty patches are rejected upstream.
func buildPatchQuery(table, idColumn string, sets []string, args *[]interface{}, id int64) string {
	*args = append(*args, id)
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(sets, ", "), idColumn, len(*args),
	)
}

// requireRowsAffected turns a zero-row write into sql.ErrNoRows so the
// service layer maps it to not-found.
func requireRowsAffected(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", resource, sql.ErrNoRows)
	}
	return nil
}

// translateError maps driver-level constraint failures onto sentinel errors
// so services never inspect pq codes themselves.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrInvalidReference
		}
	}
	return err
}
