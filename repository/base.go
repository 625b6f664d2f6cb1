package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes the durable tier maps to error kinds
const (
	pgUniqueViolation = "23505"
	pgRaiseException  = "P0001"
)

// PostgresBase provides the durable tier's shared plumbing: a context-bound
// connection and translation of driver errors into error kinds.
type PostgresBase struct {
	DB *gorm.DB
}

func NewPostgresBase(db *gorm.DB) PostgresBase {
	return PostgresBase{DB: db}
}

// getDB returns the connection bound to ctx, reusing a transaction stored
// under TxContextKey when present.
func (r PostgresBase) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.DB.WithContext(ctx)
}

// WithTransaction runs fn with a transaction stored on its context so that
// durable calls made inside share it. When ctx already carries a transaction
// fn joins it.
func (r PostgresBase) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, TxContextKey, tx))
	})
}

// list runs the set-returning stored function op with args and scans every
// row into T.
func list[T any](ctx context.Context, r PostgresBase, op Operation, args ...any) ([]T, error) {
	var rows []T
	if err := r.getDB(ctx).Raw(callSQL(op, len(args)), args...).Scan(&rows).Error; err != nil {
		return nil, durableError(op, err)
	}
	if len(rows) == 0 {
		return nil, opError(TierDurable, op, ErrNotFound, nil)
	}
	return rows, nil
}

// exec calls the stored function op for its side effect.
func (r PostgresBase) exec(ctx context.Context, op Operation, args ...any) error {
	if err := r.getDB(ctx).Exec(scalarSQL(op, len(args)), args...).Error; err != nil {
		return durableError(op, err)
	}
	return nil
}

// affected calls the stored function op, which returns the number of rows it
// touched, and reports ErrNotFound when that is zero.
func (r PostgresBase) affected(ctx context.Context, op Operation, args ...any) error {
	var n int64
	if err := r.getDB(ctx).Raw(scalarSQL(op, len(args)), args...).Scan(&n).Error; err != nil {
		return durableError(op, err)
	}
	if n == 0 {
		return opError(TierDurable, op, ErrNotFound, nil)
	}
	return nil
}

func callSQL(op Operation, argc int) string {
	return fmt.Sprintf("SELECT * FROM %s(%s)", op, placeholders(argc))
}

func scalarSQL(op Operation, argc int) string {
	return fmt.Sprintf("SELECT %s(%s)", op, placeholders(argc))
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// durableError classifies a driver error. Constraint violations are
// conflicts, missing records are not-found, everything else means the tier
// could not serve the call.
func durableError(op Operation, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return opError(TierDurable, op, ErrConflict, err)
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return opError(TierDurable, op, ErrConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return opError(TierDurable, op, ErrNotFound, err)
	default:
		return opError(TierDurable, op, ErrUnavailable, err)
	}
}

// isRaisedException reports whether a stored function aborted with RAISE.
func isRaisedException(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgRaiseException
}
