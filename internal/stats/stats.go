// Package stats aggregates a ledger snapshot for the status, subject and
// history views.
package stats

import (
	"sort"

	"github.com/alexanderramin/levelup/internal/domain"
)

// Summary is the status view.
type Summary struct {
	TotalExperience  domain.Points
	TotalMinutes     int
	Sessions         int
	Level            int
	Experience       domain.Points
	ExperienceToNext domain.Points
	Progress         float64
	Tickets          int
	TicketsSpent     int
}

// Summarize totals the ledger and reads the counters of snap.
func Summarize(snap domain.Snapshot) Summary {
	s := Summary{
		Sessions:         len(snap.Records),
		Level:            snap.Progress.Level,
		Experience:       snap.Progress.Experience,
		ExperienceToNext: snap.Progress.ExperienceToNextLevel(),
		Progress:         snap.Progress.LevelProgress(),
		Tickets:          snap.Progress.Tickets,
		TicketsSpent:     snap.TicketsSpent,
	}
	for _, r := range snap.Records {
		s.TotalExperience += r.EarnedPoints
		s.TotalMinutes += r.Minutes
	}
	return s
}

// CategoryTotal is the time and experience logged under one category.
type CategoryTotal struct {
	Category string
	Label    string
	Color    string
	Sessions int
	Minutes  int
	Points   domain.Points
}

// ByCategory totals records per category. Catalog categories come first in
// catalog order, including those with nothing logged; categories found only
// in the ledger follow, sorted by name.
func ByCategory(records []domain.StudyRecord, catalog domain.Catalog) []CategoryTotal {
	index := make(map[string]int, len(catalog))
	out := make([]CategoryTotal, 0, len(catalog))
	for _, c := range catalog {
		index[c.Name] = len(out)
		out = append(out, CategoryTotal{Category: c.Name, Label: c.Label(), Color: c.Color})
	}

	extra := map[string]*CategoryTotal{}
	for _, r := range records {
		var t *CategoryTotal
		if i, ok := index[r.Category]; ok {
			t = &out[i]
		} else {
			t = extra[r.Category]
			if t == nil {
				t = &CategoryTotal{Category: r.Category, Label: r.Category}
				extra[r.Category] = t
			}
		}
		t.Sessions++
		t.Minutes += r.Minutes
		t.Points += r.EarnedPoints
	}

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, *extra[name])
	}
	return out
}

// NewestFirst orders records by timestamp descending, higher id first on ties.
func NewestFirst(records []domain.StudyRecord) []domain.StudyRecord {
	out := append([]domain.StudyRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out
}
