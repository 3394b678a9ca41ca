// Package ledger holds the ordered collection of study records.
//
// Records keep creation order. Timestamps are not required to be
// chronological; Chronological returns the replay order. Ids come from a
// counter that only moves forward, so a deleted id is never handed out again
// until Clear.
package ledger

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/levelup/internal/domain"
)

// Ledger is not safe for concurrent use; the progress engine serializes access.
type Ledger struct {
	records []domain.StudyRecord
	nextID  int
}

// New builds a ledger from persisted records. The counter starts at nextID or
// one past the largest stored id, whichever is higher.
func New(records []domain.StudyRecord, nextID int) *Ledger {
	l := &Ledger{
		records: append([]domain.StudyRecord(nil), records...),
		nextID:  nextID,
	}
	for _, r := range l.records {
		if r.ID >= l.nextID {
			l.nextID = r.ID + 1
		}
	}
	if l.nextID < 1 {
		l.nextID = 1
	}
	return l
}

// Append adds a record with the next id and returns it.
func (l *Ledger) Append(minutes int, category string, earned domain.Points, timestamp string) domain.StudyRecord {
	r := domain.StudyRecord{
		ID:           l.nextID,
		Minutes:      minutes,
		Category:     category,
		EarnedPoints: earned,
		Timestamp:    timestamp,
	}
	l.nextID++
	l.records = append(l.records, r)
	return r
}

// Edit replaces minutes, category and points of the first record with id,
// keeping its id and timestamp.
func (l *Ledger) Edit(id, minutes int, category string, earned domain.Points) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("record #%d: %w", id, domain.ErrRecordNotFound)
	}
	l.records[i].Minutes = minutes
	l.records[i].Category = category
	l.records[i].EarnedPoints = earned
	return nil
}

// DeleteWhereDatePrefix removes every record whose date component equals
// date and returns how many were removed.
func (l *Ledger) DeleteWhereDatePrefix(date string) int {
	kept := l.records[:0]
	removed := 0
	for _, r := range l.records {
		if r.Date() == date {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	clear(l.records[len(kept):])
	l.records = kept
	return removed
}

// DeleteByID removes the record with id.
func (l *Ledger) DeleteByID(id int) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("record #%d: %w", id, domain.ErrRecordNotFound)
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return nil
}

// Get returns the record with id.
func (l *Ledger) Get(id int) (domain.StudyRecord, bool) {
	i := l.index(id)
	if i < 0 {
		return domain.StudyRecord{}, false
	}
	return l.records[i], true
}

// All returns a copy of the records in ledger order.
func (l *Ledger) All() []domain.StudyRecord {
	return append([]domain.StudyRecord(nil), l.records...)
}

// Chronological returns a copy sorted by timestamp; equal timestamps keep
// ledger order.
func (l *Ledger) Chronological() []domain.StudyRecord {
	return SortChronological(l.records)
}

// Clear empties the ledger and restarts ids at 1.
func (l *Ledger) Clear() {
	l.records = nil
	l.nextID = 1
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// NextID returns the id the next Append will assign.
func (l *Ledger) NextID() int { return l.nextID }

// Clone returns an independent copy.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{records: l.All(), nextID: l.nextID}
}

func (l *Ledger) index(id int) int {
	for i, r := range l.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// SortChronological returns a copy of records stably sorted by timestamp.
func SortChronological(records []domain.StudyRecord) []domain.StudyRecord {
	out := append([]domain.StudyRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}
