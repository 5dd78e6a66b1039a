// Package calendar implements the date arithmetic used by attendance and
// leave: calendar dates, working-day counts and interval overlap.
//
// A calendar date is represented as midnight UTC of that day so it compares
// and stores identically regardless of the organization time zone.
package calendar

import (
	"time"

	"github.com/hrms-api/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WorkingDaysBetween counts the days from start to end inclusive, skipping
// Saturdays and Sundays when excludeWeekends is set.
func WorkingDaysBetween(start, end time.Time, excludeWeekends bool) (int, error) {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return 0, domain.ErrInvalidRange
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if excludeWeekends && isWeekend(d) {
			continue
		}
		days++
	}
	return days, nil
}

// DaysForRequest returns the leave duration of a request: 0.5 for a half day,
// otherwise the number of working days in the range.
func DaysForRequest(start, end time.Time, isHalfDay bool) (float64, error) {
	days, err := WorkingDaysBetween(start, end, true)
	if err != nil {
		return 0, err
	}
	if isHalfDay {
		return 0.5, nil
	}
	return float64(days), nil
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Interval is an inclusive range of calendar dates.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two inclusive intervals share at least one day.
func Overlaps(a, b Interval) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// MonthBounds returns the first and last calendar date of a month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
