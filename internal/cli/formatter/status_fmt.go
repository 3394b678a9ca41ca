package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/stats"
)

// FormatStatus renders the level box shown by `levelup status`.
func FormatStatus(s stats.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(fmt.Sprintf("Level %d", s.Level)), Dim(fmt.Sprintf("(%s / %s)",
		s.Experience, domain.RequiredExperience(s.Level))))
	fmt.Fprintf(&b, "%s\n", RenderProgress(s.Progress, 24))
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Next level in"), StyleYellow.Render(FormatPoints(s.ExperienceToNext)))

	fmt.Fprintf(&b, "%-16s %s\n", "Tickets", StyleGreen.Render(fmt.Sprintf("%d", s.Tickets)))
	fmt.Fprintf(&b, "%-16s %d\n", "Tickets used", s.TicketsSpent)
	fmt.Fprintf(&b, "%-16s %s\n", "Total experience", FormatPoints(s.TotalExperience))
	fmt.Fprintf(&b, "%-16s %s\n", "Total time", FormatMinutes(s.TotalMinutes))
	fmt.Fprintf(&b, "%-16s %d", "Sessions", s.Sessions)
	return RenderBox("Progress", b.String()) + "\n"
}

// FormatLogResult describes a newly recorded session and any levels gained.
func FormatLogResult(minutes int, label string, earned domain.Points, before, after domain.ProgressState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Logged %s of %s %s\n", FormatMinutes(minutes), label, StyleGreen.Render("+"+FormatPoints(earned)))
	if after.Level > before.Level {
		fmt.Fprintf(&b, "%s Level %d → %d, tickets: %d\n",
			StyleHeader.Render("Level up!"), before.Level, after.Level, after.Tickets)
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("Level %d, %s to next level", after.Level, FormatPoints(after.ExperienceToNextLevel()))))
	return b.String()
}

// FormatSubjects renders per-category totals.
func FormatSubjects(totals []stats.CategoryTotal) string {
	headers := []string{"SUBJECT", "SESSIONS", "TIME", "XP"}
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{
			CategoryStyle(t.Color).Render(t.Label),
			fmt.Sprintf("%d", t.Sessions),
			FormatMinutes(t.Minutes),
			t.Points.String(),
		})
	}
	return RenderTableAligned(headers, rows, []Align{AlignLeft, AlignRight, AlignRight, AlignRight})
}
