package pacing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/ledger"
)

// ErrInsufficientData is returned when there are too few records to fit a model.
var ErrInsufficientData = errors.New("insufficient data")

const ridge = 1e-6

// SessionModel predicts session minutes from the day offset, weekday, hour of
// day and category of a session.
type SessionModel struct {
	origin     time.Time
	categories []string
	coef       []float64
}

// FitSessionModel fits an ordinary least squares model over the records.
func FitSessionModel(records []domain.StudyRecord) (*SessionModel, error) {
	if len(records) < MinRecords {
		return nil, fmt.Errorf("fitting session model on %d records: %w", len(records), ErrInsufficientData)
	}
	sorted := ledger.SortChronological(records)

	times := make([]time.Time, len(sorted))
	seen := map[string]bool{}
	for i, r := range sorted {
		t, err := r.Time()
		if err != nil {
			return nil, fmt.Errorf("record #%d: %w", r.ID, err)
		}
		times[i] = t
		seen[r.Category] = true
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	m := &SessionModel{origin: times[0], categories: categories}
	rows := make([][]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, r := range sorted {
		rows[i] = m.features(times[i], r.Category)
		ys[i] = float64(r.Minutes)
	}

	coef, err := leastSquares(rows, ys)
	if err != nil {
		return nil, err
	}
	m.coef = coef
	return m, nil
}

// Predict returns the expected minutes for a session at the given time and
// category, never below zero. Unknown categories contribute nothing.
func (m *SessionModel) Predict(at time.Time, category string) float64 {
	x := m.features(at, category)
	y := 0.0
	for i, v := range x {
		y += v * m.coef[i]
	}
	return math.Max(0, y)
}

// features lays out [1, days since origin, weekday (Mon=0), hour, one-hot category...].
func (m *SessionModel) features(at time.Time, category string) []float64 {
	x := make([]float64, 4+len(m.categories))
	x[0] = 1
	x[1] = float64(daysBetween(m.origin, at))
	x[2] = float64((int(at.Weekday()) + 6) % 7)
	x[3] = float64(at.Hour())
	for i, c := range m.categories {
		if c == category {
			x[4+i] = 1
		}
	}
	return x
}

// daysBetween counts calendar days from a to b, ignoring clock shifts.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// leastSquares solves the ridge-stabilized normal equations. The intercept is
// not penalized.
func leastSquares(rows [][]float64, ys []float64) ([]float64, error) {
	n := len(rows[0])
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n+1)
	}
	for k, row := range rows {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				a[i][j] += row[i] * row[j]
			}
			a[i][n] += row[i] * ys[k]
		}
	}
	for i := 1; i < n; i++ {
		a[i][i] += ridge
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular design matrix: %w", ErrInsufficientData)
		}
		a[col], a[pivot] = a[pivot], a[col]
		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c <= n; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	coef := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := a[i][n]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * coef[j]
		}
		coef[i] = sum / a[i][i]
	}
	return coef, nil
}

// LinearTrend fits a SessionModel and averages its predictions for the next
// Horizon days, at the hour and category of the latest session.
type LinearTrend struct {
	Horizon int
}

func (LinearTrend) Name() string { return "linear-trend" }

func (s LinearTrend) DailyHours(records []domain.StudyRecord) (float64, bool) {
	model, err := FitSessionModel(records)
	if err != nil {
		return 0, false
	}
	sorted := ledger.SortChronological(records)
	last := sorted[len(sorted)-1]
	lastAt, err := last.Time()
	if err != nil {
		return 0, false
	}

	horizon := s.Horizon
	if horizon < 1 {
		horizon = DefaultWindow
	}
	total := 0.0
	for d := 1; d <= horizon; d++ {
		total += model.Predict(lastAt.AddDate(0, 0, d), last.Category)
	}
	return total / float64(horizon) / 60, true
}

// StrategyByName resolves the names accepted on the command line.
func StrategyByName(name string, window int) (Strategy, error) {
	switch name {
	case "", "recent", "recent-average":
		return RecentAverage{Window: window}, nil
	case "trend", "linear-trend":
		return LinearTrend{Horizon: window}, nil
	default:
		return nil, fmt.Errorf("unknown pacing strategy %q: %w", name, domain.ErrInvalidInput)
	}
}
