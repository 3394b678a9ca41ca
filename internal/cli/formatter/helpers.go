package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/pacing"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatPoints renders experience with one decimal, e.g. "20.0 XP".
func FormatPoints(p domain.Points) string {
	return p.String() + " XP"
}

// FormatHours renders a whole or fractional hour target, e.g. "10h", "2.5h".
func FormatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", h), "0"), ".") + "h"
}

// FormatSpan renders a calendar split as "1y 1mo 5d", skipping zero parts.
// Spans at the projection sentinel read "no data".
func FormatSpan(days int) string {
	if days >= pacing.NoDataDays {
		return "no data"
	}
	s := pacing.DaysToCalendarSpan(days)
	var parts []string
	if s.Years > 0 {
		parts = append(parts, fmt.Sprintf("%dy", s.Years))
	}
	if s.Months > 0 {
		parts = append(parts, fmt.Sprintf("%dmo", s.Months))
	}
	if s.Days > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dd", s.Days))
	}
	return strings.Join(parts, " ")
}
