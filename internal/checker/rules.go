package checker

import "github.com/username/timesheet-checker/pkg/worktime"

// Policy constants
var (
	// WorkdayLowerBound is the earliest permitted start of work
	WorkdayLowerBound = worktime.MustClockTime(6, 0)
	// WorkdayUpperBound is the latest permitted end of work
	WorkdayUpperBound = worktime.MustClockTime(22, 0)
	// WorkdayMaxWorkingTime is the daily maximum (ArbZG §3)
	WorkdayMaxWorkingTime = worktime.NewTimeSpan(10, 0)
)

// MaxEntries is the number of rows the monthly form holds
const MaxEntries = 22

// PauseRule requires a break of at least Pause once working time exceeds Threshold
type PauseRule struct {
	Threshold worktime.TimeSpan
	Pause     worktime.TimeSpan
}

// PauseRules are ordered from the largest threshold downward (ArbZG §4)
var PauseRules = []PauseRule{
	{Threshold: worktime.NewTimeSpan(9, 0), Pause: worktime.NewTimeSpan(0, 45)},
	{Threshold: worktime.NewTimeSpan(6, 0), Pause: worktime.NewTimeSpan(0, 30)},
}

// RequiredPause returns the break required for the given working time.
// Only the strictest applicable rule matters since a higher threshold implies the lower ones.
func RequiredPause(workingTime worktime.TimeSpan) worktime.TimeSpan {
	for _, rule := range PauseRules {
		if workingTime.After(rule.Threshold) {
			return rule.Pause
		}
	}
	return worktime.Minutes(0)
}
