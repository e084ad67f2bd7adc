// Package calendar counts business days and turns them into suggested hours.
// Business days are Monday through Friday; there is no holiday calendar.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DefaultHoursPerDay is the standard working day length.
const DefaultHoursPerDay = 8

// DateLayout is the on-disk and command-line date format.
const DateLayout = "2006-01-02"

// Date truncates t to midnight UTC of its own calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WorkingDays counts the weekdays in the inclusive range [start, end].
// It returns 0 when start is after end.
func WorkingDays(start, end time.Time) int {
	start, end = Date(start), Date(end)
	if start.After(end) {
		return 0
	}

	// Unix seconds; Sub saturates on multi-century ranges
	totalDays := int((end.Unix()-start.Unix())/86400) + 1
	fullWeeks := totalDays / 7
	days := fullWeeks * 5

	// Walk the leftover days after the full weeks
	wd := start.Weekday()
	for i := 0; i < totalDays%7; i++ {
		if wd != time.Saturday && wd != time.Sunday {
			days++
		}
		wd = (wd + 1) % 7
	}

	return days
}

// WorkingHours converts the business days between start and end into hours.
// A missing date or an inverted range yields 0 rather than an error so the
// value can be shown as a suggestion while a form is still incomplete.
func WorkingHours(start, end *time.Time, hoursPerDay int) int {
	if start == nil || end == nil {
		return 0
	}
	return WorkingDays(*start, *end) * hoursPerDay
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate renders a nullable date, using "-" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(DateLayout)
}
