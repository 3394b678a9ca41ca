package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/levelup/internal/db"
)

// FailOnNthExecUoW runs the callback in a real transaction but makes the Nth
// ExecContext inside it return Err. Snapshot saves issue one statement per
// record, so this lets tests break a save halfway and check the rollback.
// Reads are passed through uncounted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	// Execs is the number of statements attempted in the last transaction.
	Execs int
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	fnErr := fn(ctx, wrapped)
	u.Execs = wrapped.count
	if fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  int
	failOn int
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.count++
	if f.count == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
