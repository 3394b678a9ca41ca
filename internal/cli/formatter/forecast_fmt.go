package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/levelup/internal/pacing"
)

// Forecast is the data behind `levelup forecast`.
type Forecast struct {
	Title       string
	Strategy    string
	TotalHours  float64
	DailyHours  float64
	Projections []pacing.Projection
	// Insufficient is set when the ledger is below pacing.MinRecords.
	Insufficient bool
}

// FormatForecast renders goal arrival projections.
func FormatForecast(f Forecast) string {
	var b strings.Builder
	b.WriteString(Header(f.Title) + "\n")
	fmt.Fprintf(&b, "%s %s   %s %s/day   %s\n\n",
		Dim("Studied"), FormatHours(round1(f.TotalHours)),
		Dim("Pace"), FormatHours(round1(f.DailyHours)),
		Dim("("+f.Strategy+")"))

	if f.Insufficient {
		fmt.Fprintf(&b, "%s\n", StyleYellow.Render(fmt.Sprintf("Log at least %d sessions to see projections.", pacing.MinRecords)))
		return b.String()
	}
	if len(f.Projections) == 0 {
		fmt.Fprintf(&b, "%s\n", StyleGreen.Render("Every target reached."))
		return b.String()
	}

	headers := []string{"TARGET", "DAYS", "ROUGHLY"}
	rows := make([][]string, 0, len(f.Projections))
	for _, p := range f.Projections {
		days := fmt.Sprintf("%d", p.Days)
		if p.Days >= pacing.NoDataDays {
			days = Dim("-")
		}
		rows = append(rows, []string{FormatHours(p.TargetHours), days, FormatSpan(p.Days)})
	}
	b.WriteString(RenderTableAligned(headers, rows, []Align{AlignRight, AlignRight, AlignLeft}))
	return b.String()
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
