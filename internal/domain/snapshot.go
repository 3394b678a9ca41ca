package domain

// Snapshot is the complete persisted state: progress counters, the ticket
// debit that replay cannot reconstruct, the id counter and every record in
// ledger order.
type Snapshot struct {
	Progress     ProgressState
	TicketsSpent int
	NextID       int
	Records      []StudyRecord
}

// NewSnapshot returns the snapshot of a fresh install.
func NewSnapshot() Snapshot {
	return Snapshot{Progress: NewProgressState(), NextID: 1}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Records = append([]StudyRecord(nil), s.Records...)
	return out
}
