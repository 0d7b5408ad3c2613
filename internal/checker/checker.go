package checker

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/timesheet-checker/internal/timesheet"
	"go.uber.org/zap"
)

// HolidayChecker is the holiday capability consumed by the calendar check.
// calendar.Calendar implementations satisfy it.
type HolidayChecker interface {
	IsHoliday(date time.Time) (bool, error)
}

// HolidayFunc adapts a function to HolidayChecker
type HolidayFunc func(date time.Time) (bool, error)

// IsHoliday calls f(date)
func (f HolidayFunc) IsHoliday(date time.Time) (bool, error) {
	return f(date)
}

// Verdict is the aggregate outcome of a check run
type Verdict int

const (
	Valid Verdict = iota + 1
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "VALID"
	case Invalid:
		return "INVALID"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// MarshalText implements encoding.TextMarshaler
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Result holds the verdict and every violation found, in check order
type Result struct {
	Verdict Verdict
	Errors  []Error
}

// Has reports whether any violation of the kind was found
func (r *Result) Has(kind Kind) bool {
	return r.Count(kind) > 0
}

// Count returns the number of violations of the kind
func (r *Result) Count(kind Kind) int {
	n := 0
	for _, e := range r.Errors {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Checker validates timesheets against the time-accounting rules
type Checker struct {
	holidays HolidayChecker
	logger   *zap.Logger
}

// New creates a new checker
func New(holidays HolidayChecker, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		holidays: holidays,
		logger:   logger,
	}
}

// Check runs all checks and collects every violation.
// Violations never stop the run; only a holiday lookup failure does.
func (c *Checker) Check(sheet *timesheet.TimeSheet) (*Result, error) {
	if sheet == nil {
		return nil, errors.New("timesheet is nil")
	}
	if c.holidays == nil {
		return nil, errors.New("no holiday service configured")
	}

	var errs []Error
	for _, check := range sheetChecks {
		found := check.run(sheet)
		c.logger.Debug("Check finished",
			zap.String("check", check.name),
			zap.Int("violations", len(found)))
		errs = append(errs, found...)
	}

	calendarErrs, err := checkValidWorkingDays(sheet, c.holidays)
	if err != nil {
		c.logger.Error("Calendar check failed",
			zap.Int("year", sheet.Year()),
			zap.Int("month", int(sheet.Month())),
			zap.Error(err))
		return nil, err
	}
	c.logger.Debug("Check finished",
		zap.String("check", "valid_working_days"),
		zap.Int("violations", len(calendarErrs)))
	errs = append(errs, calendarErrs...)

	result := &Result{Verdict: Valid, Errors: errs}
	if len(errs) > 0 {
		result.Verdict = Invalid
	}

	c.logger.Info("Timesheet checked",
		zap.String("employee", sheet.Employee().Name),
		zap.Int("year", sheet.Year()),
		zap.Int("month", int(sheet.Month())),
		zap.Int("entries", sheet.EntryCount()),
		zap.Stringer("verdict", result.Verdict),
		zap.Int("violations", len(errs)))

	return result, nil
}
