package stats

import (
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
)

// WeekdayNames labels WeekdayMinutes buckets.
var WeekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// HourlyMinutes sums minutes by the hour the session was logged. Records with
// unparseable timestamps are skipped.
func HourlyMinutes(records []domain.StudyRecord) [24]int {
	var out [24]int
	for _, r := range records {
		t, err := r.Time()
		if err != nil {
			continue
		}
		out[t.Hour()] += r.Minutes
	}
	return out
}

// WeekdayMinutes sums minutes by weekday, Monday first.
func WeekdayMinutes(records []domain.StudyRecord) [7]int {
	var out [7]int
	for _, r := range records {
		t, err := r.Time()
		if err != nil {
			continue
		}
		out[mondayIndex(t.Weekday())] += r.Minutes
	}
	return out
}

func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Period is a bucket width for ExperienceByPeriod.
type Period int

const (
	Day Period = iota
	Week
	Month
)

// DefaultBuckets is how many buckets of each period the chart shows.
var DefaultBuckets = map[Period]int{Day: 7, Week: 8, Month: 12}

func (p Period) String() string {
	switch p {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	}
	return "unknown"
}

// Bucket is the experience earned in [Start, next bucket's Start).
type Bucket struct {
	Start  time.Time
	Label  string
	Points domain.Points
}

// ExperienceByPeriod returns count consecutive buckets, oldest first, the
// last one containing now. Weeks start on Monday.
func ExperienceByPeriod(records []domain.StudyRecord, period Period, count int, now time.Time) []Bucket {
	if count < 1 {
		return nil
	}
	current := periodStart(now, period)
	buckets := make([]Bucket, count)
	for i := range buckets {
		start := step(current, period, i-(count-1))
		buckets[i] = Bucket{Start: start, Label: label(start, period)}
	}

	first := buckets[0].Start
	end := step(current, period, 1)
	for _, r := range records {
		t, err := r.Time()
		if err != nil || t.Before(first) || !t.Before(end) {
			continue
		}
		start := periodStart(t, period)
		for i := range buckets {
			if buckets[i].Start.Equal(start) {
				buckets[i].Points += r.EarnedPoints
				break
			}
		}
	}
	return buckets
}

func periodStart(t time.Time, p Period) time.Time {
	y, m, d := t.Date()
	switch p {
	case Week:
		day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		return day.AddDate(0, 0, -mondayIndex(day.Weekday()))
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

func step(t time.Time, p Period, n int) time.Time {
	switch p {
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

func label(t time.Time, p Period) string {
	if p == Month {
		return t.Format("2006-01")
	}
	return t.Format(domain.DateLayout)
}
