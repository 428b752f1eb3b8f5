// Package clock supplies the current local date for a configured time zone.
package clock

import (
	"fmt"
	"time"
)

// Clock reports the current time in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a clock for the named IANA zone.
func New(zone string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", zone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// Fixed returns a clock frozen at t, in t's location.
func Fixed(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Now returns the current time in the clock's location.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Location returns the clock's zone.
func (c *Clock) Location() *time.Location { return c.loc }

// Today returns the local calendar date as UTC midnight, the form in which
// dates are stored and compared.
func (c *Clock) Today() time.Time {
	return Date(c.Now())
}

// Date truncates t to its calendar date, expressed as UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD form value.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}
