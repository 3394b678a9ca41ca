package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is what the repositories query through: a *sql.DB outside a
// transaction or the *sql.Tx handed to a TxFunc.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a transaction.
type TxFunc = func(ctx context.Context, tx DBTX) error

// UnitOfWork runs a TxFunc atomically. A snapshot save is one unit: every
// record row and the progress row commit together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil and rolls back otherwise, including
// when fn panics. The error from fn is kept in the chain so callers can still
// inspect driver errors such as SQLITE_BUSY.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}
