package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/domain"
)

// SQLiteProgressStateRepo reads and writes the single progress_state row.
type SQLiteProgressStateRepo struct {
	db db.DBTX
}

// NewSQLiteProgressStateRepo creates a new SQLiteProgressStateRepo.
func NewSQLiteProgressStateRepo(conn db.DBTX) *SQLiteProgressStateRepo {
	return &SQLiteProgressStateRepo{db: conn}
}

func (r *SQLiteProgressStateRepo) Get(ctx context.Context) (ProgressRow, error) {
	query := `SELECT experience_milli, level, tickets, tickets_spent, next_id
		FROM progress_state WHERE id = 1`
	var row ProgressRow
	var exp int64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&exp, &row.Progress.Level, &row.Progress.Tickets, &row.TicketsSpent, &row.NextID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProgressRow{}, fmt.Errorf("progress state: %w", ErrNotFound)
		}
		return ProgressRow{}, fmt.Errorf("scanning progress state: %w", err)
	}
	row.Progress.Experience = domain.Points(exp)
	return row, nil
}

func (r *SQLiteProgressStateRepo) Upsert(ctx context.Context, row ProgressRow) error {
	query := `INSERT INTO progress_state (id, experience_milli, level, tickets, tickets_spent, next_id, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			experience_milli = excluded.experience_milli,
			level            = excluded.level,
			tickets          = excluded.tickets,
			tickets_spent    = excluded.tickets_spent,
			next_id          = excluded.next_id,
			updated_at       = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		int64(row.Progress.Experience),
		row.Progress.Level,
		row.Progress.Tickets,
		row.TicketsSpent,
		row.NextID,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting progress state: %w", err)
	}
	return nil
}
