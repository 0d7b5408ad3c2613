package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/timesheet-checker/internal/checker"
	"github.com/username/timesheet-checker/internal/loader"
	"github.com/username/timesheet-checker/pkg/dateutil"
	"github.com/username/timesheet-checker/pkg/random"
	"github.com/username/timesheet-checker/pkg/worktime"
	"go.uber.org/zap"
)

// ErrTargetUnreachable is returned when the target cannot be placed on the available days
var ErrTargetUnreachable = errors.New("target working time cannot be planned")

// hoursPerDay is the default share of the target placed on one working day
const hoursPerDay = 4

// Options describes the month to plan
type Options struct {
	Year   int
	Month  time.Month
	Target worktime.TimeSpan
	Action string
	// Days is the number of working days to use; 0 picks one day per four hours of target
	Days  int
	Start worktime.ClockTime
	// RandomizationPercent varies each day's share of the target
	RandomizationPercent float64
}

// Planner drafts month documents that pass every check
type Planner struct {
	holidays checker.HolidayChecker
	rng      *random.Generator
	logger   *zap.Logger
}

// New creates a new planner
func New(holidays checker.HolidayChecker, rng *random.Generator, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		holidays: holidays,
		rng:      rng,
		logger:   logger,
	}
}

// Plan spreads the target over randomly chosen working days of the month.
// Saturdays, Sundays and holidays are never used; each day starts at opts.Start
// and carries the break its working time requires.
func (p *Planner) Plan(opts Options) (*loader.MonthDocument, error) {
	if opts.Month < time.January || opts.Month > time.December {
		return nil, fmt.Errorf("invalid month: %d", opts.Month)
	}
	if opts.Target.IsNegative() {
		return nil, fmt.Errorf("%w: negative target %s", ErrTargetUnreachable, opts.Target)
	}
	if opts.Start.Before(checker.WorkdayLowerBound) {
		return nil, fmt.Errorf("start %s is before %s", opts.Start, checker.WorkdayLowerBound)
	}

	doc := &loader.MonthDocument{
		Year:    opts.Year,
		Month:   int(opts.Month),
		Entries: []loader.EntryDocument{},
	}
	if opts.Target.IsZero() {
		return doc, nil
	}

	candidates, err := p.workingDays(opts.Year, opts.Month)
	if err != nil {
		return nil, err
	}

	n := opts.Days
	if n <= 0 {
		perDay := hoursPerDay * 60
		n = (opts.Target.TotalMinutes() + perDay - 1) / perDay
	}
	n = min(n, len(candidates), checker.MaxEntries)

	dailyMax := checker.WorkdayMaxWorkingTime.TotalMinutes()
	if n == 0 || opts.Target.TotalMinutes() > n*dailyMax {
		return nil, fmt.Errorf("%w: %s on %d day(s) of at most %s",
			ErrTargetUnreachable, opts.Target, n, checker.WorkdayMaxWorkingTime)
	}

	minutes := capSlots(p.rng.DistributeMinutes(opts.Target.TotalMinutes(), n, opts.RandomizationPercent), dailyMax)
	days := p.rng.SelectItems(len(candidates), n)

	for i, idx := range days {
		if minutes[i] == 0 {
			continue
		}
		working := worktime.Minutes(minutes[i])
		pause := checker.RequiredPause(working)

		end, err := opts.Start.Add(working.Add(pause))
		if err != nil || end.After(checker.WorkdayUpperBound) {
			return nil, fmt.Errorf("%w: %s of work starting %s ends after %s",
				ErrTargetUnreachable, working, opts.Start, checker.WorkdayUpperBound)
		}

		start := opts.Start
		entry := loader.EntryDocument{
			Action: opts.Action,
			Day:    candidates[idx].Day(),
			Start:  &start,
			End:    &end,
		}
		if !pause.IsZero() {
			entry.Pause = &pause
		}
		doc.Entries = append(doc.Entries, entry)
	}

	p.logger.Info("Month planned",
		zap.Int("year", opts.Year),
		zap.Int("month", int(opts.Month)),
		zap.Stringer("target", opts.Target),
		zap.Int("candidate_days", len(candidates)),
		zap.Int("entries", len(doc.Entries)))

	return doc, nil
}

// workingDays returns Monday to Friday dates of the month that are not holidays
func (p *Planner) workingDays(year int, month time.Month) ([]time.Time, error) {
	var days []time.Time
	for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
		date := dateutil.Date(year, month, day)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}

		isHoliday, err := p.holidays.IsHoliday(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", checker.ErrHolidayLookup, dateutil.DateKey(date), err)
		}
		if isHoliday {
			p.logger.Debug("Skipping holiday", zap.String("date", dateutil.DateKey(date)))
			continue
		}
		days = append(days, date)
	}
	return days, nil
}

// capSlots moves minutes above limit onto slots with room left.
// The caller guarantees sum(values) <= len(values)*limit.
func capSlots(values []int, limit int) []int {
	excess := 0
	for i, v := range values {
		if v > limit {
			excess += v - limit
			values[i] = limit
		}
	}
	for i := range values {
		if excess == 0 {
			break
		}
		room := min(limit-values[i], excess)
		values[i] += room
		excess -= room
	}
	return values
}
