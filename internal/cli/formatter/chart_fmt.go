package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/levelup/internal/stats"
)

// FormatDistribution renders minutes by hour of day and by weekday.
func FormatDistribution(hourly [24]int, weekday [7]int) string {
	var b strings.Builder
	b.WriteString(Header("By hour of day") + "\n")

	labels := make([]string, 0, 24)
	values := make([]float64, 0, 24)
	for h, m := range hourly {
		labels = append(labels, fmt.Sprintf("%02d:00", h))
		values = append(values, float64(m))
	}
	b.WriteString(RenderBars(labels, values, 30, minutesLabel))

	b.WriteString("\n" + Header("By weekday") + "\n")
	labels = labels[:0]
	values = values[:0]
	for i, m := range weekday {
		labels = append(labels, stats.WeekdayNames[i])
		values = append(values, float64(m))
	}
	b.WriteString(RenderBars(labels, values, 30, minutesLabel))
	return b.String()
}

// FormatBuckets renders experience per period, oldest first.
func FormatBuckets(period stats.Period, buckets []stats.Bucket) string {
	var b strings.Builder
	b.WriteString(Header("Experience by "+period.String()) + "\n")

	labels := make([]string, 0, len(buckets))
	values := make([]float64, 0, len(buckets))
	for _, bk := range buckets {
		labels = append(labels, bk.Label)
		values = append(values, bk.Points.Float())
	}
	b.WriteString(RenderBars(labels, values, 30, func(v float64) string {
		return fmt.Sprintf("%.1f XP", v)
	}))
	return b.String()
}

func minutesLabel(v float64) string {
	return FormatMinutes(int(v))
}
