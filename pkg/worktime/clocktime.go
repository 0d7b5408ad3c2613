package worktime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrInvalidClockTime is returned for hours outside 0-23, minutes outside 0-59 or malformed text
	ErrInvalidClockTime = errors.New("invalid clock time")

	// ErrOutOfDayBounds is returned when arithmetic would move a clock time into another day
	ErrOutOfDayBounds = errors.New("clock time out of day bounds")
)

var clockTimePattern = regexp.MustCompile(`^([0-9]{1,2}):([0-5][0-9])$`)

// ClockTime is a point within a single day, 00:00 through 23:59.
// Arithmetic never wraps around midnight.
type ClockTime struct {
	minutes int
}

// NewClockTime creates a clock time from hour (0-23) and minute (0-59)
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: %d:%d", ErrInvalidClockTime, hour, minute)
	}
	return ClockTime{minutes: hour*minutesPerHour + minute}, nil
}

// MustClockTime is like NewClockTime but panics on invalid input
func MustClockTime(hour, minute int) ClockTime {
	ct, err := NewClockTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return ct
}

// ParseClockTime parses text in the format H:MM or HH:MM
func ParseClockTime(s string) (ClockTime, error) {
	m := clockTimePattern.FindStringSubmatch(s)
	if m == nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return NewClockTime(hour, minute)
}

// MustParseClockTime is like ParseClockTime but panics on malformed input
func MustParseClockTime(s string) ClockTime {
	ct, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func (c ClockTime) Hour() int         { return c.minutes / minutesPerHour }
func (c ClockTime) Minute() int       { return c.minutes % minutesPerHour }
func (c ClockTime) TotalMinutes() int { return c.minutes }

// Add moves the clock time forward by d. The result must stay within the same day.
func (c ClockTime) Add(d TimeSpan) (ClockTime, error) {
	return c.shift(c.minutes + d.minutes)
}

// Sub moves the clock time backward by d. The result must stay within the same day.
func (c ClockTime) Sub(d TimeSpan) (ClockTime, error) {
	return c.shift(c.minutes - d.minutes)
}

func (c ClockTime) shift(total int) (ClockTime, error) {
	if total < 0 || total >= minutesPerDay {
		return ClockTime{}, fmt.Errorf("%w: %s shifted to %d minutes", ErrOutOfDayBounds, c, total)
	}
	return ClockTime{minutes: total}, nil
}

// DifferenceTo returns other - c as a signed span
func (c ClockTime) DifferenceTo(other ClockTime) TimeSpan {
	return TimeSpan{minutes: other.minutes - c.minutes}
}

// Compare returns -1, 0 or +1 depending on whether c is earlier, equal or later than other
func (c ClockTime) Compare(other ClockTime) int {
	switch {
	case c.minutes < other.minutes:
		return -1
	case c.minutes > other.minutes:
		return 1
	default:
		return 0
	}
}

func (c ClockTime) Before(other ClockTime) bool { return c.minutes < other.minutes }
func (c ClockTime) After(other ClockTime) bool  { return c.minutes > other.minutes }

// LaterOf returns the later of two clock times
func LaterOf(a, b ClockTime) ClockTime {
	if a.minutes >= b.minutes {
		return a
	}
	return b
}

// String formats the clock time as HH:MM
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalText implements encoding.TextMarshaler
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
