package checker

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/timesheet-checker/pkg/dateutil"
	"github.com/username/timesheet-checker/pkg/worktime"
)

// ErrHolidayLookup wraps failures of the holiday service. It is never mapped onto a violation.
var ErrHolidayLookup = errors.New("holiday lookup failed")

// Kind tags a violation. The set is closed.
type Kind int

const (
	NameMissing Kind = iota + 1
	RowNumExceedance
	TimeOutOfBounds
	DayTimeExceedance
	TimePause
	TotalTimeExceedance
	AllowedWorkingTimeNegative
	TimeOverlap
	TimeSunday
	TimeHoliday
)

var kindTags = map[Kind]string{
	NameMissing:                "NAME_MISSING",
	RowNumExceedance:           "ROWNUM_EXCEEDANCE",
	TimeOutOfBounds:            "TIME_OUTOFBOUNDS",
	DayTimeExceedance:          "DAY_TIME_EXCEEDANCE",
	TimePause:                  "TIME_PAUSE",
	TotalTimeExceedance:        "TOTAL_TIME_EXCEEDANCE",
	AllowedWorkingTimeNegative: "ALLOWED_WORKING_TIME_NEGATIVE",
	TimeOverlap:                "TIME_OVERLAP",
	TimeSunday:                 "TIME_SUNDAY",
	TimeHoliday:                "TIME_HOLIDAY",
}

// Kinds returns all violation kinds in declaration order
func Kinds() []Kind {
	return []Kind{
		NameMissing, RowNumExceedance, TimeOutOfBounds, DayTimeExceedance, TimePause,
		TotalTimeExceedance, AllowedWorkingTimeNegative, TimeOverlap, TimeSunday, TimeHoliday,
	}
}

// String returns the stable tag, e.g. TIME_OVERLAP
func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is one violation with the structured context a consumer needs to render it.
// Which fields are set depends on Kind:
//
//	TimeOutOfBounds, TimePause, TimeOverlap, TimeSunday, TimeHoliday: Date
//	DayTimeExceedance: Date, Allowed (daily maximum)
//	TotalTimeExceedance: Allowed (monthly budget), Amount (excess)
//	RowNumExceedance: Limit (maximum entry count)
type Error struct {
	Kind    Kind
	Date    time.Time
	Allowed worktime.TimeSpan
	Amount  worktime.TimeSpan
	Limit   int
}

// HasDate reports whether the violation is keyed by a calendar date
func (e Error) HasDate() bool {
	return !e.Date.IsZero()
}

func (e Error) Error() string {
	switch e.Kind {
	case RowNumExceedance:
		return fmt.Sprintf("%s: more than %d entries", e.Kind, e.Limit)
	case DayTimeExceedance:
		return fmt.Sprintf("%s: %s exceeds %s", e.Kind, dateutil.DateKey(e.Date), e.Allowed)
	case TotalTimeExceedance:
		return fmt.Sprintf("%s: allowed %s, exceeded by %s", e.Kind, e.Allowed, e.Amount)
	}
	if e.HasDate() {
		return fmt.Sprintf("%s: %s", e.Kind, dateutil.DateKey(e.Date))
	}
	return e.Kind.String()
}

func newDateError(kind Kind, date time.Time) Error {
	return Error{Kind: kind, Date: date}
}
