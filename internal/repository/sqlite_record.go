package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/levelup/internal/db"
	"github.com/alexanderramin/levelup/internal/domain"
)

// SQLiteStudyRecordRepo stores ledger records. position keeps ledger order,
// which differs from timestamp order after backfills.
type SQLiteStudyRecordRepo struct {
	db db.DBTX
}

// NewSQLiteStudyRecordRepo creates a new SQLiteStudyRecordRepo.
func NewSQLiteStudyRecordRepo(conn db.DBTX) *SQLiteStudyRecordRepo {
	return &SQLiteStudyRecordRepo{db: conn}
}

func (r *SQLiteStudyRecordRepo) ListAll(ctx context.Context) ([]domain.StudyRecord, error) {
	query := `SELECT id, minutes, category, earned_milli, timestamp
		FROM study_records ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing study records: %w", err)
	}
	defer rows.Close()

	var records []domain.StudyRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study records: %w", err)
	}
	return records, nil
}

func (r *SQLiteStudyRecordRepo) GetByID(ctx context.Context, id int) (domain.StudyRecord, error) {
	query := `SELECT id, minutes, category, earned_milli, timestamp
		FROM study_records WHERE id = ?`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StudyRecord{}, fmt.Errorf("study record #%d: %w", id, ErrNotFound)
	}
	return rec, err
}

// ReplaceAll deletes every stored record and inserts records in order.
// Callers run it inside a transaction.
func (r *SQLiteStudyRecordRepo) ReplaceAll(ctx context.Context, records []domain.StudyRecord) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_records`); err != nil {
		return fmt.Errorf("clearing study records: %w", err)
	}
	query := `INSERT INTO study_records (position, id, minutes, category, earned_milli, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, rec := range records {
		_, err := r.db.ExecContext(ctx, query,
			i+1,
			rec.ID,
			rec.Minutes,
			rec.Category,
			int64(rec.EarnedPoints),
			rec.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("inserting study record #%d: %w", rec.ID, err)
		}
	}
	return nil
}

func (r *SQLiteStudyRecordRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting study records: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (domain.StudyRecord, error) {
	var rec domain.StudyRecord
	var earned int64
	if err := s.Scan(&rec.ID, &rec.Minutes, &rec.Category, &earned, &rec.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StudyRecord{}, err
		}
		return domain.StudyRecord{}, fmt.Errorf("scanning study record: %w", err)
	}
	rec.EarnedPoints = domain.Points(earned)
	return rec, nil
}
