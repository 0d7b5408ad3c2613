package timesheet

import (
	"fmt"
	"time"

	"github.com/username/timesheet-checker/pkg/dateutil"
	"github.com/username/timesheet-checker/pkg/worktime"
)

// Entry is one logged activity on one day. It is immutable after construction.
type Entry struct {
	action   string
	date     time.Time
	start    worktime.ClockTime
	end      worktime.ClockTime
	pause    worktime.TimeSpan
	vacation bool
}

// NewEntry validates and creates an entry
func NewEntry(action string, date time.Time, start, end worktime.ClockTime, pause worktime.TimeSpan, vacation bool) (Entry, error) {
	if start.After(end) {
		return Entry{}, fmt.Errorf("%w: %s > %s", ErrStartAfterEnd, start, end)
	}
	if pause.IsNegative() {
		return Entry{}, fmt.Errorf("%w: %s", ErrNegativePause, pause)
	}
	if vacation && !pause.IsZero() {
		return Entry{}, fmt.Errorf("%w: %s", ErrPauseOnVacation, pause)
	}
	if pause.After(start.DifferenceTo(end)) {
		return Entry{}, fmt.Errorf("%w: pause %s, span %s", ErrPauseExceedsSpan, pause, start.DifferenceTo(end))
	}

	return Entry{
		action:   action,
		date:     dateutil.StartOfDay(date),
		start:    start,
		end:      end,
		pause:    pause,
		vacation: vacation,
	}, nil
}

func (e Entry) Action() string            { return e.action }
func (e Entry) Date() time.Time           { return e.date }
func (e Entry) Start() worktime.ClockTime { return e.start }
func (e Entry) End() worktime.ClockTime   { return e.end }
func (e Entry) Pause() worktime.TimeSpan  { return e.pause }
func (e Entry) IsVacation() bool          { return e.vacation }

// WorkingTime returns (end - start) - pause
func (e Entry) WorkingTime() worktime.TimeSpan {
	return e.start.DifferenceTo(e.end).Sub(e.pause)
}

// Compare orders entries by date, then start, then end
func (e Entry) Compare(other Entry) int {
	if c := e.date.Compare(other.date); c != 0 {
		return c
	}
	if c := e.start.Compare(other.start); c != 0 {
		return c
	}
	return e.end.Compare(other.end)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s-%s (pause %s) %s",
		dateutil.DateKey(e.date), e.start, e.end, e.pause, e.action)
}
