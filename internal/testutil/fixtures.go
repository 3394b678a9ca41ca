package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
)

// RecordOption customizes a fixture record.
type RecordOption func(*domain.StudyRecord)

func WithCategory(c string) RecordOption {
	return func(r *domain.StudyRecord) {
		r.Category = c
	}
}

func WithTimestamp(ts string) RecordOption {
	return func(r *domain.StudyRecord) {
		r.Timestamp = ts
	}
}

func WithTime(t time.Time) RecordOption {
	return func(r *domain.StudyRecord) {
		r.Timestamp = domain.FormatTimestamp(t)
	}
}

// WithDifficulty recomputes the earned points for the record's minutes.
func WithDifficulty(d float64) RecordOption {
	return func(r *domain.StudyRecord) {
		r.EarnedPoints = domain.EarnedPoints(r.Minutes, d)
	}
}

// NewTestRecord builds a Mathematics record at difficulty 1.0 dated
// 2025-01-<id> 09:00 unless overridden.
func NewTestRecord(id, minutes int, opts ...RecordOption) domain.StudyRecord {
	r := domain.StudyRecord{
		ID:           id,
		Minutes:      minutes,
		Category:     "Mathematics",
		EarnedPoints: domain.EarnedPoints(minutes, 1.0),
		Timestamp:    fmt.Sprintf("2025-01-%02d 09:00", 1+(id-1)%28),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// DailyRecords returns n records of minutes each, one per day starting at
// start, ids 1..n.
func DailyRecords(start time.Time, n, minutes int, opts ...RecordOption) []domain.StudyRecord {
	out := make([]domain.StudyRecord, 0, n)
	for i := 0; i < n; i++ {
		all := append([]RecordOption{WithTime(start.AddDate(0, 0, i))}, opts...)
		out = append(out, NewTestRecord(i+1, minutes, all...))
	}
	return out
}

// FixedClock returns a clock that starts at t and advances by step per call.
func FixedClock(t time.Time, step time.Duration) func() time.Time {
	current := t
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}
