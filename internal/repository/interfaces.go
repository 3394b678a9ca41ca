package repository

import (
	"context"

	"github.com/alexanderramin/levelup/internal/domain"
)

// ProgressRow is the stored counter row: everything in a snapshot except the
// records.
type ProgressRow struct {
	Progress     domain.ProgressState
	TicketsSpent int
	NextID       int
}

type ProgressStateRepo interface {
	Get(ctx context.Context) (ProgressRow, error)
	Upsert(ctx context.Context, row ProgressRow) error
}

type StudyRecordRepo interface {
	ListAll(ctx context.Context) ([]domain.StudyRecord, error)
	GetByID(ctx context.Context, id int) (domain.StudyRecord, error)
	ReplaceAll(ctx context.Context, records []domain.StudyRecord) error
	Count(ctx context.Context) (int, error)
}

var (
	_ ProgressStateRepo = (*SQLiteProgressStateRepo)(nil)
	_ StudyRecordRepo   = (*SQLiteStudyRecordRepo)(nil)
)
