package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/avast/retry-go"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	saveAttempts   = 5
	saveRetryDelay = 20 * time.Millisecond
)

// SQLiteSnapshotStore persists whole snapshots. Each save replaces every
// record and the state row in one transaction.
type SQLiteSnapshotStore struct {
	uow db.UnitOfWork
}

// NewSQLiteSnapshotStore creates a store over database.
func NewSQLiteSnapshotStore(database *sql.DB) *SQLiteSnapshotStore {
	return NewSQLiteSnapshotStoreWithUoW(db.NewSQLiteUnitOfWork(database))
}

// NewSQLiteSnapshotStoreWithUoW creates a store that runs its transactions
// through uow.
func NewSQLiteSnapshotStoreWithUoW(uow db.UnitOfWork) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{uow: uow}
}

// Load returns the stored snapshot, or domain.NewSnapshot() for an empty
// database.
func (s *SQLiteSnapshotStore) Load(ctx context.Context) (domain.Snapshot, error) {
	snap := domain.NewSnapshot()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records, err := NewSQLiteStudyRecordRepo(tx).ListAll(ctx)
		if err != nil {
			return err
		}
		snap.Records = records

		row, err := NewSQLiteProgressStateRepo(tx).Get(ctx)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		snap.Progress = row.Progress
		snap.TicketsSpent = row.TicketsSpent
		snap.NextID = row.NextID
		return nil
	})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}
	return snap, nil
}

// Save writes snap in one transaction. A save that finds the database locked
// by another connection is retried with backoff; other errors are returned
// at once.
func (s *SQLiteSnapshotStore) Save(ctx context.Context, snap domain.Snapshot) error {
	return retry.Do(
		func() error {
			err := s.save(ctx, snap)
			if err != nil && !isBusy(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(saveAttempts),
		retry.Delay(saveRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (s *SQLiteSnapshotStore) save(ctx context.Context, snap domain.Snapshot) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteStudyRecordRepo(tx).ReplaceAll(ctx, snap.Records); err != nil {
			return err
		}
		return NewSQLiteProgressStateRepo(tx).Upsert(ctx, ProgressRow{
			Progress:     snap.Progress,
			TicketsSpent: snap.TicketsSpent,
			NextID:       snap.NextID,
		})
	})
}

// isBusy reports SQLITE_BUSY and SQLITE_LOCKED, including extended codes.
func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}
