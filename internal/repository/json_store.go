package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/alexanderramin/levelup/internal/domain"
)

// JSONFileStore keeps a snapshot in the flat file format of the original
// study tracker:
//
//	{"exp": 20.0, "level": 2, "tickets": 1,
//	 "study_log": [[1, 60, "Mathematics", 60.0, "2025-01-01 09:00"], ...]}
//
// tickets_spent and next_id are written as extra keys and derived when absent.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a store for the file at path.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the backing file path.
func (s *JSONFileStore) Path() string {
	return s.path
}

type legacyFile struct {
	Exp          float64       `json:"exp"`
	Level        int           `json:"level"`
	Tickets      int           `json:"tickets"`
	TicketsSpent *int          `json:"tickets_spent,omitempty"`
	NextID       *int          `json:"next_id,omitempty"`
	StudyLog     []legacyEntry `json:"study_log"`
}

// legacyEntry is one [id, minutes, subject, exp, timestamp] tuple.
type legacyEntry struct {
	ID        int
	Minutes   int
	Subject   string
	Exp       float64
	Timestamp string
}

func (e legacyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.ID, e.Minutes, e.Subject, e.Exp, e.Timestamp})
}

func (e *legacyEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("study log entry must be an array: %w", err)
	}
	if len(raw) != 5 {
		return fmt.Errorf("study log entry has %d fields, want 5", len(raw))
	}
	var id, minutes float64
	if err := json.Unmarshal(raw[0], &id); err != nil {
		return fmt.Errorf("study log id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &minutes); err != nil {
		return fmt.Errorf("study log minutes: %w", err)
	}
	if err := json.Unmarshal(raw[2], &e.Subject); err != nil {
		return fmt.Errorf("study log subject: %w", err)
	}
	if err := json.Unmarshal(raw[3], &e.Exp); err != nil {
		return fmt.Errorf("study log exp: %w", err)
	}
	if err := json.Unmarshal(raw[4], &e.Timestamp); err != nil {
		return fmt.Errorf("study log timestamp: %w", err)
	}
	e.ID = int(id)
	e.Minutes = int(math.Round(minutes))
	return nil
}

// Load reads the file. A missing file is an empty snapshot.
func (s *JSONFileStore) Load(_ context.Context) (domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return DecodeLegacy(data)
}

// Save writes the snapshot to a temp file next to the target and renames it
// into place.
func (s *JSONFileStore) Save(_ context.Context, snap domain.Snapshot) error {
	data, err := EncodeLegacy(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".levelup-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// DecodeLegacy parses the flat file format.
func DecodeLegacy(data []byte) (domain.Snapshot, error) {
	var f legacyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}

	snap := domain.NewSnapshot()
	snap.Progress = domain.ProgressState{
		Experience: domain.PointsFromFloat(f.Exp),
		Level:      max(1, f.Level),
		Tickets:    max(0, f.Tickets),
	}
	if f.TicketsSpent != nil {
		snap.TicketsSpent = max(0, *f.TicketsSpent)
	} else {
		snap.TicketsSpent = max(0, snap.Progress.Level-1-snap.Progress.Tickets)
	}

	maxID := 0
	for _, e := range f.StudyLog {
		snap.Records = append(snap.Records, domain.StudyRecord{
			ID:           e.ID,
			Minutes:      e.Minutes,
			Category:     e.Subject,
			EarnedPoints: domain.PointsFromFloat(e.Exp),
			Timestamp:    e.Timestamp,
		})
		maxID = max(maxID, e.ID)
	}
	snap.NextID = maxID + 1
	if f.NextID != nil && *f.NextID > snap.NextID {
		snap.NextID = *f.NextID
	}
	return snap, nil
}

// EncodeLegacy renders a snapshot in the flat file format.
func EncodeLegacy(snap domain.Snapshot) ([]byte, error) {
	spent, next := snap.TicketsSpent, snap.NextID
	f := legacyFile{
		Exp:          snap.Progress.Experience.Float(),
		Level:        snap.Progress.Level,
		Tickets:      snap.Progress.Tickets,
		TicketsSpent: &spent,
		NextID:       &next,
		StudyLog:     make([]legacyEntry, 0, len(snap.Records)),
	}
	for _, r := range snap.Records {
		f.StudyLog = append(f.StudyLog, legacyEntry{
			ID:        r.ID,
			Minutes:   r.Minutes,
			Subject:   r.Category,
			Exp:       r.EarnedPoints.Float(),
			Timestamp: r.Timestamp,
		})
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}
