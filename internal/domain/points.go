package domain

import (
	"fmt"
	"math"
)

// Points is an amount of experience in milli-points. Keeping experience as an
// integer makes level thresholds compare exactly; floats only appear at the
// display and file-format edges.
type Points int64

// PointScale is the number of Points in one displayed experience point.
const PointScale = 1000

// maxDifficulty bounds multipliers. Together with MaxSessionMinutes it keeps
// one session under MaxSessionPoints, far from the int64 limit.
const maxDifficulty = 1000

// MaxSessionPoints is the most one session can earn.
const MaxSessionPoints = Points(MaxSessionMinutes * maxDifficulty * PointScale)

// PointsFromFloat converts a displayed experience value to Points, rounding
// to the nearest milli-point.
func PointsFromFloat(v float64) Points {
	return Points(math.Round(v * PointScale))
}

// Float returns the displayed experience value.
func (p Points) Float() float64 {
	return float64(p) / PointScale
}

func (p Points) String() string {
	return fmt.Sprintf("%.1f", p.Float())
}

// DifficultyMilli rounds a difficulty multiplier to three decimals, the
// precision at which earned points are computed.
func DifficultyMilli(difficulty float64) int64 {
	return int64(math.Round(difficulty * PointScale))
}

// EarnedPoints returns minutes × difficulty as Points.
func EarnedPoints(minutes int, difficulty float64) Points {
	return Points(int64(minutes) * DifficultyMilli(difficulty))
}

// RequiredExperience is the experience needed to leave level: 100 × level^1.5,
// rounded once to the nearest milli-point.
func RequiredExperience(level int) Points {
	if level < 1 {
		level = 1
	}
	return Points(math.Round(100 * math.Pow(float64(level), 1.5) * PointScale))
}
