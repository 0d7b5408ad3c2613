package checker

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/timesheet-checker/internal/timesheet"
	"github.com/username/timesheet-checker/pkg/dateutil"
	"github.com/username/timesheet-checker/pkg/worktime"
)

// sheetCheck is a pure check over a timesheet
type sheetCheck struct {
	name string
	run  func(sheet *timesheet.TimeSheet) []Error
}

// sheetChecks run in this order; each is independent of the others
var sheetChecks = []sheetCheck{
	{"department_name", checkDepartmentName},
	{"row_count", checkRowCount},
	{"day_time_bounds", checkDayTimeBounds},
	{"day_time_exceedance", checkDayTimeExceedance},
	{"day_pause_time", checkDayPauseTime},
	{"total_time_exceedance", checkTotalTimeExceedance},
	{"allowed_working_time_negative", checkAllowedWorkingTimeNegative},
	{"time_overlap", checkTimeOverlap},
}

// dateSet deduplicates per-date violations
type dateSet map[string]struct{}

// add returns true the first time a date is seen
func (s dateSet) add(date time.Time) bool {
	key := dateutil.DateKey(date)
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

func checkDepartmentName(sheet *timesheet.TimeSheet) []Error {
	if strings.TrimSpace(sheet.Profession().Department) == "" {
		return []Error{{Kind: NameMissing}}
	}
	return nil
}

func checkRowCount(sheet *timesheet.TimeSheet) []Error {
	if sheet.EntryCount() > MaxEntries {
		return []Error{{Kind: RowNumExceedance, Limit: MaxEntries}}
	}
	return nil
}

func checkDayTimeBounds(sheet *timesheet.TimeSheet) []Error {
	var errs []Error
	seen := dateSet{}
	for _, entry := range sheet.SortedEntries() {
		if entry.Start().Before(WorkdayLowerBound) || entry.End().After(WorkdayUpperBound) {
			if seen.add(entry.Date()) {
				errs = append(errs, newDateError(TimeOutOfBounds, entry.Date()))
			}
		}
	}
	return errs
}

func checkDayTimeExceedance(sheet *timesheet.TimeSheet) []Error {
	var dates []time.Time
	perDay := make(map[string]worktime.TimeSpan)
	for _, entry := range sheet.SortedEntries() {
		key := dateutil.DateKey(entry.Date())
		if _, ok := perDay[key]; !ok {
			dates = append(dates, entry.Date())
		}
		perDay[key] = perDay[key].Add(entry.WorkingTime())
	}

	var errs []Error
	for _, date := range dates {
		if perDay[dateutil.DateKey(date)].After(WorkdayMaxWorkingTime) {
			errs = append(errs, Error{Kind: DayTimeExceedance, Date: date, Allowed: WorkdayMaxWorkingTime})
		}
	}
	return errs
}

// checkDayPauseTime reports entries whose pause is shorter than RequiredPause.
// Vacation entries are included and always carry a zero pause, so a vacation
// entry longer than 6:00 is reported and can only be fixed by splitting it.
func checkDayPauseTime(sheet *timesheet.TimeSheet) []Error {
	var errs []Error
	seen := dateSet{}
	for _, entry := range sheet.SortedEntries() {
		if entry.Pause().Before(RequiredPause(entry.WorkingTime())) && seen.add(entry.Date()) {
			errs = append(errs, newDateError(TimePause, entry.Date()))
		}
	}
	return errs
}

// AllowedWorkingTime is the monthly budget: maximum minus predecessor transfer plus successor transfer
func AllowedWorkingTime(sheet *timesheet.TimeSheet) worktime.TimeSpan {
	return sheet.Profession().MaxWorkingTime.
		Sub(sheet.PredTransfer()).
		Add(sheet.SuccTransfer())
}

// ActualWorkingTime is worked time plus vacation time
func ActualWorkingTime(sheet *timesheet.TimeSheet) worktime.TimeSpan {
	return sheet.TotalWorkTime().Add(sheet.TotalVacationTime())
}

func checkTotalTimeExceedance(sheet *timesheet.TimeSheet) []Error {
	allowed := AllowedWorkingTime(sheet)
	actual := ActualWorkingTime(sheet)
	if actual.After(allowed) {
		return []Error{{Kind: TotalTimeExceedance, Allowed: allowed, Amount: actual.Sub(allowed)}}
	}
	return nil
}

func checkAllowedWorkingTimeNegative(sheet *timesheet.TimeSheet) []Error {
	if AllowedWorkingTime(sheet).IsNegative() {
		return []Error{{Kind: AllowedWorkingTimeNegative}}
	}
	return nil
}

// checkTimeOverlap sweeps entries in (date, start) order tracking the latest end per date.
// Touching intervals do not overlap.
func checkTimeOverlap(sheet *timesheet.TimeSheet) []Error {
	var errs []Error
	seen := dateSet{}

	var currentDate time.Time
	var runningEnd worktime.ClockTime
	for i, entry := range sheet.SortedEntries() {
		if i == 0 || !entry.Date().Equal(currentDate) {
			currentDate = entry.Date()
			runningEnd = entry.End()
			continue
		}

		if entry.Start().Before(runningEnd) && seen.add(currentDate) {
			errs = append(errs, newDateError(TimeOverlap, currentDate))
		}
		runningEnd = worktime.LaterOf(runningEnd, entry.End())
	}
	return errs
}

// checkValidWorkingDays flags Sundays and public holidays. Sunday dominates, so a Sunday
// is never looked up. A lookup failure aborts the check.
func checkValidWorkingDays(sheet *timesheet.TimeSheet, holidays HolidayChecker) ([]Error, error) {
	var errs []Error
	seen := dateSet{}
	for _, entry := range sheet.SortedEntries() {
		date := entry.Date()
		if !seen.add(date) {
			continue
		}

		if dateutil.IsSunday(date) {
			errs = append(errs, newDateError(TimeSunday, date))
			continue
		}

		isHoliday, err := holidays.IsHoliday(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrHolidayLookup, dateutil.DateKey(date), err)
		}
		if isHoliday {
			errs = append(errs, newDateError(TimeHoliday, date))
		}
	}
	return errs, nil
}
