package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/timesheet-checker/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrNoCalendar is returned by a CompositeCalendar with an empty chain
var ErrNoCalendar = errors.New("no calendar configured")

// CompositeCalendar asks each calendar of its chain in turn and returns the first answer.
// Typical chain: FeiertageCalendar, then FileCalendar or GermanCalendar.
type CompositeCalendar struct {
	chain  []Calendar
	logger *zap.Logger
}

// NewCompositeCalendar creates a calendar trying chain[0] first
func NewCompositeCalendar(logger *zap.Logger, chain ...Calendar) *CompositeCalendar {
	return &CompositeCalendar{
		chain:  chain,
		logger: logger,
	}
}

// IsHoliday checks if the given date is a public holiday
func (cc *CompositeCalendar) IsHoliday(date time.Time) (bool, error) {
	return firstAnswer(cc, zap.String("date", dateutil.DateKey(date)), func(cal Calendar) (bool, error) {
		return cal.IsHoliday(date)
	})
}

// Holidays returns all public holidays of the year
func (cc *CompositeCalendar) Holidays(year int) ([]Holiday, error) {
	return firstAnswer(cc, zap.Int("year", year), func(cal Calendar) ([]Holiday, error) {
		return cal.Holidays(year)
	})
}

func firstAnswer[T any](cc *CompositeCalendar, query zap.Field, ask func(Calendar) (T, error)) (T, error) {
	var zero T
	if len(cc.chain) == 0 {
		return zero, ErrNoCalendar
	}

	var errs []error
	for i, cal := range cc.chain {
		answer, err := ask(cal)
		if err == nil {
			if i > 0 {
				cc.logger.Warn("Calendar failed, answered by fallback",
					query,
					zap.Int("fallback", i),
					zap.Error(errors.Join(errs...)))
			}
			return answer, nil
		}
		errs = append(errs, fmt.Errorf("%T: %w", cal, err))
	}
	return zero, fmt.Errorf("all %d calendars failed: %w", len(cc.chain), errors.Join(errs...))
}

// LoadFiles loads every FileCalendar in the chain
func (cc *CompositeCalendar) LoadFiles() error {
	var errs []error
	for _, cal := range cc.chain {
		fc, ok := cal.(*FileCalendar)
		if !ok {
			continue
		}
		if err := fc.Load(); err != nil {
			errs = append(errs, err)
			continue
		}
		cc.logger.Info("Fallback calendar loaded", zap.String("file", fc.filePath))
	}
	return errors.Join(errs...)
}
