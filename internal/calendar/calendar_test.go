package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/domain"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestWorkingDaysBetween(t *testing.T) {
	tests := []struct {
		name            string
		start, end      string
		excludeWeekends bool
		want            int
	}{
		{"monday to friday", "2024-03-04", "2024-03-08", true, 5},
		{"weekend only", "2024-03-02", "2024-03-03", true, 0},
		{"weekend counted", "2024-03-02", "2024-03-03", false, 2},
		{"two weeks", "2024-03-04", "2024-03-17", true, 10},
		{"single day", "2024-03-06", "2024-03-06", true, 1},
		{"across month end", "2024-02-28", "2024-03-01", true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.WorkingDaysBetween(mustDate(t, tt.start), mustDate(t, tt.end), tt.excludeWeekends)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWorkingDaysBetween_InvalidRange(t *testing.T) {
	_, err := calendar.WorkingDaysBetween(mustDate(t, "2024-03-08"), mustDate(t, "2024-03-04"), true)
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestDaysForRequest(t *testing.T) {
	days, err := calendar.DaysForRequest(mustDate(t, "2024-03-04"), mustDate(t, "2024-03-08"), false)
	if err != nil || days != 5 {
		t.Errorf("expected 5 days, got %v (%v)", days, err)
	}

	days, err = calendar.DaysForRequest(mustDate(t, "2024-03-04"), mustDate(t, "2024-03-04"), true)
	if err != nil || days != 0.5 {
		t.Errorf("expected 0.5 days, got %v (%v)", days, err)
	}

	if _, err := calendar.DaysForRequest(mustDate(t, "2024-03-05"), mustDate(t, "2024-03-04"), true); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	a := calendar.Interval{Start: mustDate(t, "2024-03-04"), End: mustDate(t, "2024-03-08")}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical", "2024-03-04", "2024-03-08", true},
		{"shares last day", "2024-03-08", "2024-03-12", true},
		{"shares first day", "2024-03-01", "2024-03-04", true},
		{"contained", "2024-03-05", "2024-03-06", true},
		{"adjacent after", "2024-03-09", "2024-03-10", false},
		{"adjacent before", "2024-03-01", "2024-03-03", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := calendar.Interval{Start: mustDate(t, tt.start), End: mustDate(t, tt.end)}
			if got := calendar.Overlaps(a, b); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got := calendar.Overlaps(b, a); got != tt.want {
				t.Errorf("overlap is not symmetric: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := calendar.ParseDate("04/03/2024"); !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestClock_TodayUsesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)
	instant := time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC) // 01:30 on the 5th in IST

	clock := calendar.NewClockFunc(loc, func() time.Time { return instant })
	if got := calendar.FormatDate(clock.Today()); got != "2024-03-05" {
		t.Errorf("expected 2024-03-05, got %s", got)
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := calendar.MonthBounds(2024, time.February)
	if calendar.FormatDate(first) != "2024-02-01" || calendar.FormatDate(last) != "2024-02-29" {
		t.Errorf("unexpected bounds %s..%s", calendar.FormatDate(first), calendar.FormatDate(last))
	}
}
