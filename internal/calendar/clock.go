package calendar

import (
	"time"
)

// Clock tells the current instant and calendar date in the organization's
// time zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a wall clock for loc.
func NewClock(loc *time.Location) *Clock {
	return NewClockFunc(loc, time.Now)
}

// NewClockFunc creates a clock backed by now; tests use it to control time.
func NewClockFunc(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: now}
}

// LoadLocation resolves an IANA zone name, falling back to UTC when the zone
// database does not know it.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Now returns the current instant in the clock's location.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current calendar date in the clock's location.
func (c *Clock) Today() time.Time {
	return DateOf(c.Now())
}

// Location returns the clock's time zone.
func (c *Clock) Location() *time.Location {
	return c.loc
}
