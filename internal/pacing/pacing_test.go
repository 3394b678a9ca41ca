package pacing

import (
	"testing"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2025, 1, 6, 9, 0, 0, 0, time.Local)

func TestTotalHours(t *testing.T) {
	records := []domain.StudyRecord{
		testutil.NewTestRecord(1, 30),
		testutil.NewTestRecord(2, 90),
	}
	assert.InDelta(t, 2.0, TotalHours(records), 1e-9)
	assert.Zero(t, TotalHours(nil))
}

func TestRecentDailyAverageHours(t *testing.T) {
	tests := []struct {
		name    string
		minutes []int
		window  int
		want    float64
	}{
		{"empty", nil, 7, 0},
		{"fewer than window", []int{60, 120}, 7, 1.5},
		{"window takes the latest", []int{600, 600, 60, 60, 60, 60, 60, 60, 60}, 7, 1.0},
		{"window of one", []int{30, 90}, 1, 1.5},
		{"non-positive window falls back to default", []int{60, 60}, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []domain.StudyRecord
			for i, m := range tt.minutes {
				records = append(records, testutil.NewTestRecord(i+1, m, testutil.WithTime(day0.AddDate(0, 0, i))))
			}
			assert.InDelta(t, tt.want, RecentDailyAverageHours(records, tt.window), 1e-9)
		})
	}
}

func TestRecentDailyAverageHours_SortsByTimestamp(t *testing.T) {
	// Creation order differs from chronological order; the window follows time.
	records := []domain.StudyRecord{
		testutil.NewTestRecord(1, 60, testutil.WithTimestamp("2025-01-10 09:00")),
		testutil.NewTestRecord(2, 600, testutil.WithTimestamp("2025-01-01 09:00")),
	}
	assert.InDelta(t, 1.0, RecentDailyAverageHours(records, 1), 1e-9)
}

func TestProjectArrival_NeedsFiveRecords(t *testing.T) {
	records := testutil.DailyRecords(day0, 4, 60)
	assert.Empty(t, ProjectArrival(records, []float64{10, 20}))

	records = testutil.DailyRecords(day0, 5, 60)
	got := ProjectArrival(records, []float64{10, 20})
	require.Len(t, got, 2)
}

func TestProjectArrival_ComputesDays(t *testing.T) {
	// 5 hours logged at one hour a day.
	records := testutil.DailyRecords(day0, 5, 60)

	got := ProjectArrival(records, []float64{2, 10, 20, 5})

	assert.Equal(t, []Projection{
		{TargetHours: 10, Days: 5},
		{TargetHours: 20, Days: 15},
	}, got)
}

func TestProjectArrival_FloorsAndClampsToOne(t *testing.T) {
	// 5 × 90 minutes = 7.5h at 1.5h/day.
	records := testutil.DailyRecords(day0, 5, 90)

	got := ProjectArrival(records, []float64{8, 10})

	assert.Equal(t, []Projection{
		{TargetHours: 8, Days: 1},
		{TargetHours: 10, Days: 1},
	}, got)

	got = ProjectArrival(records, []float64{12})
	assert.Equal(t, []Projection{{TargetHours: 12, Days: 3}}, got)
}

func TestProjectArrival_UsesRecentWindow(t *testing.T) {
	records := testutil.DailyRecords(day0, 3, 600)
	records = append(records, testutil.DailyRecords(day0.AddDate(0, 0, 3), 7, 30)...)
	for i := range records {
		records[i].ID = i + 1
	}

	// 30h + 3.5h logged; pace is the last seven 30-minute sessions.
	got := ProjectArrival(records, []float64{40})
	assert.Equal(t, []Projection{{TargetHours: 40, Days: 13}}, got)
}

func TestProjectArrival_ZeroPaceUsesSentinel(t *testing.T) {
	records := testutil.DailyRecords(day0, 5, 0)
	got := ProjectArrival(records, []float64{10})
	assert.Equal(t, []Projection{{TargetHours: 10, Days: NoDataDays}}, got)
}

func TestProjectArrival_SlowPaceStaysFinite(t *testing.T) {
	// One minute a day: 200000h is about twelve million days away.
	records := testutil.DailyRecords(day0, 5, 1)

	got := ProjectArrival(records, []float64{200000, 1e300})

	require.Len(t, got, 2)
	assert.InDelta(t, 11999995, got[0].Days, 1)
	assert.Equal(t, MaxProjectedDays, got[1].Days)
}

func TestProjectArrivalForCategory(t *testing.T) {
	records := testutil.DailyRecords(day0, 5, 60)

	t.Run("no matching records", func(t *testing.T) {
		got := ProjectArrivalForCategory(records, "English", []float64{10})
		assert.Equal(t, []Projection{{TargetHours: 10, Days: NoDataDays}}, got)
	})

	t.Run("gate applies to the whole ledger", func(t *testing.T) {
		mixed := testutil.DailyRecords(day0, 4, 60)
		mixed = append(mixed, testutil.NewTestRecord(5, 120, testutil.WithCategory("English"),
			testutil.WithTime(day0.AddDate(0, 0, 4))))

		got := ProjectArrivalForCategory(mixed, "English", []float64{10})
		assert.Equal(t, []Projection{{TargetHours: 10, Days: 4}}, got)

		assert.Empty(t, ProjectArrivalForCategory(mixed[:4], "English", []float64{10}))
	})

	t.Run("matching subset", func(t *testing.T) {
		got := ProjectArrivalForCategory(records, "Mathematics", []float64{10, 3})
		assert.Equal(t, []Projection{{TargetHours: 10, Days: 5}}, got)
	})
}

func TestProjectArrival_UsesRecentAverageOnly(t *testing.T) {
	records := rising(14)
	targets := []float64{50, 100}

	assert.Equal(t, Project(records, targets, RecentAverage{Window: DefaultWindow}), ProjectArrival(records, targets))
}

func TestDaysToCalendarSpan(t *testing.T) {
	tests := []struct {
		days int
		want CalendarSpan
	}{
		{0, CalendarSpan{}},
		{29, CalendarSpan{Days: 29}},
		{30, CalendarSpan{Months: 1}},
		{365, CalendarSpan{Years: 1}},
		{400, CalendarSpan{Years: 1, Months: 1, Days: 5}},
		{999999, CalendarSpan{Years: 2739, Months: 8, Days: 24}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysToCalendarSpan(tt.days), "days=%d", tt.days)
	}
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("recent", 7)
	require.NoError(t, err)
	assert.Equal(t, RecentAverage{Window: 7}, s)

	s, err = StrategyByName("trend", 7)
	require.NoError(t, err)
	assert.Equal(t, "linear-trend", s.Name())

	_, err = StrategyByName("oracle", 7)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProjectCategory_SmallSubsetWithTrend(t *testing.T) {
	records := testutil.DailyRecords(day0, 5, 60)
	records = append(records, testutil.NewTestRecord(6, 60, testutil.WithCategory("English"),
		testutil.WithTime(day0.AddDate(0, 0, 5))))

	// One English record is too few to fit a trend, so nothing can be projected.
	got := ProjectCategory(records, "English", []float64{10}, LinearTrend{Horizon: 7})
	assert.Equal(t, []Projection{{TargetHours: 10, Days: NoDataDays}}, got)
}
