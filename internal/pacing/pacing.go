// Package pacing turns a ledger snapshot into study-rate estimates and
// projects how many days remain until cumulative-hour targets are reached.
// Everything here is a pure function of the records passed in.
package pacing

import (
	"math"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/ledger"
)

const (
	// MinRecords is the ledger size below which projections return nothing.
	MinRecords = 5

	// DefaultWindow is the number of most recent records averaged for pace.
	DefaultWindow = 7

	// NoDataDays is reported when a target cannot be projected.
	NoDataDays = 999999

	// MaxProjectedDays caps finite estimates so they always fit in an int.
	MaxProjectedDays = math.MaxInt32
)

// DefaultTargets are the cumulative-hour goals shown when none are configured.
var DefaultTargets = []float64{10, 20, 30, 40, 50, 100, 200, 300, 400, 500, 1000, 2000, 3000, 4000, 5000, 10000}

// Projection is the estimated number of days until TargetHours is reached.
type Projection struct {
	TargetHours float64
	Days        int
}

// Strategy estimates a study rate in hours per day. ok is false when the
// strategy has nothing to go on.
type Strategy interface {
	Name() string
	DailyHours(records []domain.StudyRecord) (hours float64, ok bool)
}

// RecentAverage is the mean length of the last Window records, read as the
// daily rate.
type RecentAverage struct {
	Window int
}

func (RecentAverage) Name() string { return "recent-average" }

func (s RecentAverage) DailyHours(records []domain.StudyRecord) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}
	return RecentDailyAverageHours(records, s.Window), true
}

// TotalHours is the sum of all minutes in hours.
func TotalHours(records []domain.StudyRecord) float64 {
	total := 0
	for _, r := range records {
		total += r.Minutes
	}
	return float64(total) / 60
}

// RecentDailyAverageHours averages the minutes of the chronologically last
// min(window, len) records and returns it in hours. A window below 1 uses
// DefaultWindow.
func RecentDailyAverageHours(records []domain.StudyRecord, window int) float64 {
	if len(records) == 0 {
		return 0
	}
	if window < 1 {
		window = DefaultWindow
	}
	sorted := ledger.SortChronological(records)
	tail := sorted[len(sorted)-min(window, len(sorted)):]

	sum := 0
	for _, r := range tail {
		sum += r.Minutes
	}
	return float64(sum) / float64(len(tail)) / 60
}

// ProjectArrival projects each target from the recent-average pace. It
// returns nothing for fewer than MinRecords records and skips targets already
// reached; the rest keep the order of targets.
func ProjectArrival(records []domain.StudyRecord, targets []float64) []Projection {
	return Project(records, targets, RecentAverage{Window: DefaultWindow})
}

// ProjectArrivalForCategory projects targets for one category. The
// MinRecords gate applies to the whole ledger; a category with no records at
// all gets NoDataDays for every target.
func ProjectArrivalForCategory(records []domain.StudyRecord, category string, targets []float64) []Projection {
	return ProjectCategory(records, category, targets, RecentAverage{Window: DefaultWindow})
}

// ProjectCategory is ProjectArrivalForCategory with an explicit strategy.
func ProjectCategory(records []domain.StudyRecord, category string, targets []float64, strategy Strategy) []Projection {
	if len(records) < MinRecords {
		return nil
	}
	subset := FilterCategory(records, category)
	if len(subset) == 0 {
		out := make([]Projection, 0, len(targets))
		for _, target := range targets {
			out = append(out, Projection{TargetHours: target, Days: NoDataDays})
		}
		return out
	}
	return project(subset, targets, strategy)
}

// Project runs the arrival projection with an explicit strategy.
func Project(records []domain.StudyRecord, targets []float64, strategy Strategy) []Projection {
	if len(records) < MinRecords {
		return nil
	}
	return project(records, targets, strategy)
}

func project(records []domain.StudyRecord, targets []float64, strategy Strategy) []Projection {
	total := TotalHours(records)
	daily, ok := strategy.DailyHours(records)

	var out []Projection
	for _, target := range targets {
		if total >= target {
			continue
		}
		days := NoDataDays
		if ok && daily > 0 {
			days = int(math.Min(math.Floor((target-total)/daily), MaxProjectedDays))
		}
		out = append(out, Projection{TargetHours: target, Days: max(1, days)})
	}
	return out
}

// FilterCategory returns the records of one category in their original order.
func FilterCategory(records []domain.StudyRecord, category string) []domain.StudyRecord {
	var out []domain.StudyRecord
	for _, r := range records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
