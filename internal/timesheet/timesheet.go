package timesheet

import (
	"fmt"
	"slices"
	"time"

	"github.com/username/timesheet-checker/pkg/dateutil"
	"github.com/username/timesheet-checker/pkg/worktime"
)

// TimeSheet is one employee's record for one month.
// It is read-only once constructed.
type TimeSheet struct {
	employee     Employee
	profession   Profession
	year         int
	month        time.Month
	entries      []Entry
	succTransfer worktime.TimeSpan
	predTransfer worktime.TimeSpan
}

// NewTimeSheet validates and creates a timesheet.
// succTransfer is time deferred to the next month, predTransfer is time carried in
// from the previous month.
func NewTimeSheet(
	employee Employee,
	profession Profession,
	year int,
	month time.Month,
	entries []Entry,
	succTransfer worktime.TimeSpan,
	predTransfer worktime.TimeSpan,
) (*TimeSheet, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if succTransfer.IsNegative() {
		return nil, fmt.Errorf("%w: successor transfer %s", ErrNegativeTransfer, succTransfer)
	}
	if predTransfer.IsNegative() {
		return nil, fmt.Errorf("%w: predecessor transfer %s", ErrNegativeTransfer, predTransfer)
	}
	for i, entry := range entries {
		if !dateutil.InMonth(entry.Date(), year, month) {
			return nil, fmt.Errorf("%w: entry %d dated %s, sheet is %d-%02d",
				ErrEntryOutsideMonth, i, dateutil.DateKey(entry.Date()), year, month)
		}
	}

	return &TimeSheet{
		employee:     employee,
		profession:   profession,
		year:         year,
		month:        month,
		entries:      slices.Clone(entries),
		succTransfer: succTransfer,
		predTransfer: predTransfer,
	}, nil
}

func (ts *TimeSheet) Employee() Employee              { return ts.employee }
func (ts *TimeSheet) Profession() Profession          { return ts.profession }
func (ts *TimeSheet) Year() int                       { return ts.year }
func (ts *TimeSheet) Month() time.Month               { return ts.month }
func (ts *TimeSheet) SuccTransfer() worktime.TimeSpan { return ts.succTransfer }
func (ts *TimeSheet) PredTransfer() worktime.TimeSpan { return ts.predTransfer }
func (ts *TimeSheet) EntryCount() int                 { return len(ts.entries) }

// Entries returns a copy of the entries in input order
func (ts *TimeSheet) Entries() []Entry {
	return slices.Clone(ts.entries)
}

// SortedEntries returns a copy of the entries ordered by Entry.Compare
func (ts *TimeSheet) SortedEntries() []Entry {
	sorted := slices.Clone(ts.entries)
	slices.SortStableFunc(sorted, Entry.Compare)
	return sorted
}

// TotalWorkTime sums the working time of all non-vacation entries
func (ts *TimeSheet) TotalWorkTime() worktime.TimeSpan {
	total := worktime.Minutes(0)
	for _, entry := range ts.entries {
		if !entry.IsVacation() {
			total = total.Add(entry.WorkingTime())
		}
	}
	return total
}

// TotalVacationTime sums the working time of all vacation entries
func (ts *TimeSheet) TotalVacationTime() worktime.TimeSpan {
	total := worktime.Minutes(0)
	for _, entry := range ts.entries {
		if entry.IsVacation() {
			total = total.Add(entry.WorkingTime())
		}
	}
	return total
}
