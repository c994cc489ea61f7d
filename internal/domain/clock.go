package domain

import "time"

// Clock holds the simulated "today". It only ever moves forward, one calendar
// day per advance, independent of wall-clock time.
type Clock struct {
	CurrentDate  Date      `json:"currentDate"`
	LastAdvanced time.Time `json:"lastAdvanced"`
}

// NewClock initializes the clock at the given day.
func NewClock(today Date, now time.Time) *Clock {
	return &Clock{CurrentDate: today, LastAdvanced: now.UTC()}
}

// Advance moves the clock forward exactly one calendar day and returns the
// new date.
func (c *Clock) Advance(now time.Time) Date {
	c.CurrentDate = c.CurrentDate.AddDays(1)
	c.LastAdvanced = now.UTC()
	return c.CurrentDate
}
