package formatter

import (
	"fmt"

	"github.com/alexanderramin/levelup/internal/domain"
)

// FormatRecords renders records in the order given.
func FormatRecords(records []domain.StudyRecord, catalog domain.Catalog) string {
	if len(records) == 0 {
		return Dim("No study records.") + "\n"
	}
	headers := []string{"ID", "WHEN", "SUBJECT", "TIME", "XP"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		subject := r.Category
		if cat, err := catalog.Lookup(r.Category); err == nil {
			subject = CategoryStyle(cat.Color).Render(cat.Label())
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("#%d", r.ID)),
			r.Timestamp,
			subject,
			FormatMinutes(r.Minutes),
			r.EarnedPoints.String(),
		})
	}
	return RenderTableAligned(headers, rows, []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignRight})
}
