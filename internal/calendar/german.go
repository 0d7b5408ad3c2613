package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/timesheet-checker/pkg/dateutil"
)

// States lists the German state codes understood by GermanCalendar
var States = []string{
	"BW", "BY", "BE", "BB", "HB", "HH", "HE", "MV",
	"NI", "NW", "RP", "SL", "SN", "ST", "SH", "TH",
}

// GermanCalendar computes German public holidays offline.
// Federal holidays are always included, state holidays for the configured state only.
type GermanCalendar struct {
	state string
}

// NewGermanCalendar creates a calendar for a state code; an empty code means federal holidays only
func NewGermanCalendar(state string) (*GermanCalendar, error) {
	state = strings.ToUpper(strings.TrimSpace(state))
	if state != "" && !isKnownState(state) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	return &GermanCalendar{state: state}, nil
}

// IsHoliday checks if the given date is a public holiday
func (g *GermanCalendar) IsHoliday(date time.Time) (bool, error) {
	holidays, err := g.Holidays(date.Year())
	if err != nil {
		return false, err
	}
	for _, h := range holidays {
		if dateutil.IsSameDay(h.Date, date) {
			return true, nil
		}
	}
	return false, nil
}

// Holidays returns all public holidays of the year
func (g *GermanCalendar) Holidays(year int) ([]Holiday, error) {
	if year < 1583 {
		return nil, fmt.Errorf("%w: %d", ErrYearNotCovered, year)
	}

	easter := EasterSunday(year)
	relative := func(days int) time.Time { return easter.AddDate(0, 0, days) }
	fixed := func(month time.Month, day int) time.Time { return dateutil.Date(year, month, day) }

	holidays := []Holiday{
		{fixed(time.January, 1), "Neujahrstag"},
		{relative(-2), "Karfreitag"},
		{relative(1), "Ostermontag"},
		{fixed(time.May, 1), "Tag der Arbeit"},
		{relative(39), "Christi Himmelfahrt"},
		{relative(50), "Pfingstmontag"},
		{fixed(time.October, 3), "Tag der Deutschen Einheit"},
		{fixed(time.December, 25), "1. Weihnachtstag"},
		{fixed(time.December, 26), "2. Weihnachtstag"},
	}

	in := func(states ...string) bool {
		for _, s := range states {
			if s == g.state {
				return true
			}
		}
		return false
	}

	if in("BW", "BY", "ST") {
		holidays = append(holidays, Holiday{fixed(time.January, 6), "Heilige Drei Könige"})
	}
	if (in("BE") && year >= 2019) || (in("MV") && year >= 2023) {
		holidays = append(holidays, Holiday{fixed(time.March, 8), "Internationaler Frauentag"})
	}
	if in("BB") {
		holidays = append(holidays,
			Holiday{easter, "Ostersonntag"},
			Holiday{relative(49), "Pfingstsonntag"})
	}
	if in("BW", "BY", "HE", "NW", "RP", "SL") {
		holidays = append(holidays, Holiday{relative(60), "Fronleichnam"})
	}
	if in("SL") {
		holidays = append(holidays, Holiday{fixed(time.August, 15), "Mariä Himmelfahrt"})
	}
	if in("TH") && year >= 2019 {
		holidays = append(holidays, Holiday{fixed(time.September, 20), "Weltkindertag"})
	}
	if year == 2017 || in("BB", "MV", "SN", "ST", "TH") || (in("HB", "HH", "NI", "SH") && year >= 2018) {
		holidays = append(holidays, Holiday{fixed(time.October, 31), "Reformationstag"})
	}
	if in("BW", "BY", "NW", "RP", "SL") {
		holidays = append(holidays, Holiday{fixed(time.November, 1), "Allerheiligen"})
	}
	if in("SN") {
		holidays = append(holidays, Holiday{repentanceDay(year), "Buß- und Bettag"})
	}

	sortHolidays(holidays)
	return holidays, nil
}

// EasterSunday returns the date of Easter Sunday in the Gregorian calendar
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return dateutil.Date(year, time.Month(month), day)
}

// repentanceDay is the last Wednesday before November 23
func repentanceDay(year int) time.Time {
	day := dateutil.Date(year, time.November, 22)
	for day.Weekday() != time.Wednesday {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

func isKnownState(state string) bool {
	for _, s := range States {
		if s == state {
			return true
		}
	}
	return false
}
