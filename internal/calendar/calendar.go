package calendar

import (
	"errors"
	"time"
)

var (
	// ErrYearNotCovered is returned when a calendar has no data for the requested year
	ErrYearNotCovered = errors.New("year not covered by calendar")

	// ErrUnknownState is returned for an unrecognized German state code
	ErrUnknownState = errors.New("unknown state code")
)

// Holiday represents a public holiday
type Holiday struct {
	Date time.Time
	Name string
}

// Calendar answers public-holiday questions for one country/state.
// A lookup that cannot be answered returns an error, never a silent false.
type Calendar interface {
	// IsHoliday checks if the given date is a public holiday
	IsHoliday(date time.Time) (bool, error)

	// Holidays returns all public holidays of the year, ordered by date
	Holidays(year int) ([]Holiday, error)
}
