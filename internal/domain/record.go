package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the fixed-width, zero-padded record timestamp. Sorting
// timestamps as strings sorts them chronologically.
const TimestampLayout = "2006-01-02 15:04"

// DateLayout is the date component of TimestampLayout.
const DateLayout = "2006-01-02"

// StudyRecord is one logged study session.
type StudyRecord struct {
	ID           int
	Minutes      int
	Category     string
	EarnedPoints Points
	Timestamp    string
}

// Date returns the date component of the timestamp, the part before the space.
func (r StudyRecord) Date() string {
	date, _, _ := strings.Cut(r.Timestamp, " ")
	return date
}

// Time parses the timestamp in the local zone.
func (r StudyRecord) Time() (time.Time, error) {
	return ParseTimestamp(r.Timestamp)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a TimestampLayout string in the local zone.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q must look like YYYY-MM-DD HH:MM: %w", s, ErrInvalidInput)
	}
	return t, nil
}

// ValidateTimestamp checks that s is a well-formed record timestamp.
func ValidateTimestamp(s string) error {
	_, err := ParseTimestamp(s)
	return err
}

// ValidateDate checks that s is a YYYY-MM-DD date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("date %q must look like YYYY-MM-DD: %w", s, ErrInvalidInput)
	}
	return nil
}
