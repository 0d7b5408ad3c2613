package worktime

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// ErrInvalidTimeSpan is returned when text does not match the [-]H+:MM format
var ErrInvalidTimeSpan = errors.New("invalid time span")

var timeSpanPattern = regexp.MustCompile(`^(-)?([0-9]+):([0-5][0-9])$`)

// TimeSpan is a signed duration with minute precision.
// It has no day-boundary restriction.
type TimeSpan struct {
	minutes int
}

// NewTimeSpan creates a time span from hours and minutes
// Example: NewTimeSpan(1, 30) is 01:30, NewTimeSpan(-1, -30) is -01:30
func NewTimeSpan(hours, minutes int) TimeSpan {
	return TimeSpan{minutes: hours*minutesPerHour + minutes}
}

// Minutes creates a time span of n minutes
func Minutes(n int) TimeSpan {
	return TimeSpan{minutes: n}
}

// ParseTimeSpan parses text in the format [-]H+:MM
// Hours have unbounded width, minutes must be 00-59, a leading '+' is rejected
func ParseTimeSpan(s string) (TimeSpan, error) {
	m := timeSpanPattern.FindStringSubmatch(s)
	if m == nil {
		return TimeSpan{}, fmt.Errorf("%w: %q", ErrInvalidTimeSpan, s)
	}

	hours, err := strconv.Atoi(m[2])
	if err != nil || hours > (math.MaxInt-59)/minutesPerHour {
		return TimeSpan{}, fmt.Errorf("%w: hours out of range in %q", ErrInvalidTimeSpan, s)
	}
	minutes, _ := strconv.Atoi(m[3])

	total := hours*minutesPerHour + minutes
	if m[1] == "-" {
		total = -total
	}
	return TimeSpan{minutes: total}, nil
}

// MustParseTimeSpan is like ParseTimeSpan but panics on malformed input.
// Intended for constants and tests.
func MustParseTimeSpan(s string) TimeSpan {
	ts, err := ParseTimeSpan(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// TotalMinutes returns the signed minute count
func (t TimeSpan) TotalMinutes() int {
	return t.minutes
}

// Hours returns the hour part of the absolute value
func (t TimeSpan) Hours() int {
	return abs(t.minutes) / minutesPerHour
}

// MinutesPart returns the minute part (0-59) of the absolute value
func (t TimeSpan) MinutesPart() int {
	return abs(t.minutes) % minutesPerHour
}

// Add returns t + other
func (t TimeSpan) Add(other TimeSpan) TimeSpan {
	return TimeSpan{minutes: t.minutes + other.minutes}
}

// Sub returns t - other
func (t TimeSpan) Sub(other TimeSpan) TimeSpan {
	return TimeSpan{minutes: t.minutes - other.minutes}
}

// Neg returns -t
func (t TimeSpan) Neg() TimeSpan {
	return TimeSpan{minutes: -t.minutes}
}

// Abs returns |t|
func (t TimeSpan) Abs() TimeSpan {
	return TimeSpan{minutes: abs(t.minutes)}
}

// Compare returns -1, 0 or +1 depending on whether t is shorter, equal or longer than other
func (t TimeSpan) Compare(other TimeSpan) int {
	switch {
	case t.minutes < other.minutes:
		return -1
	case t.minutes > other.minutes:
		return 1
	default:
		return 0
	}
}

func (t TimeSpan) Before(other TimeSpan) bool { return t.minutes < other.minutes }
func (t TimeSpan) After(other TimeSpan) bool  { return t.minutes > other.minutes }
func (t TimeSpan) Equal(other TimeSpan) bool  { return t.minutes == other.minutes }

func (t TimeSpan) IsZero() bool     { return t.minutes == 0 }
func (t TimeSpan) IsPositive() bool { return t.minutes > 0 }
func (t TimeSpan) IsNegative() bool { return t.minutes < 0 }

// MaxSpan returns the longer of two spans
func MaxSpan(a, b TimeSpan) TimeSpan {
	if a.minutes >= b.minutes {
		return a
	}
	return b
}

// String formats the span as [-]HH:MM; the hour field grows as needed
func (t TimeSpan) String() string {
	sign := ""
	if t.minutes < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d:%02d", sign, t.Hours(), t.MinutesPart())
}

// MarshalText implements encoding.TextMarshaler
func (t TimeSpan) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *TimeSpan) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeSpan(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
