package pacing

// CalendarSpan is a day count split into 365-day years and 30-day months.
type CalendarSpan struct {
	Years  int
	Months int
	Days   int
}

// DaysToCalendarSpan splits totalDays approximately: 365-day years, then
// 30-day months, then the leftover days. It is not a calendar computation.
func DaysToCalendarSpan(totalDays int) CalendarSpan {
	rem := totalDays % 365
	return CalendarSpan{
		Years:  totalDays / 365,
		Months: rem / 30,
		Days:   rem % 30,
	}
}
