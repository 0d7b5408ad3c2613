package timesheet

import "errors"

// Construction errors. Malformed data is rejected here and never reaches the checker.
var (
	ErrStartAfterEnd     = errors.New("entry start is after end")
	ErrNegativePause     = errors.New("entry pause is negative")
	ErrPauseOnVacation   = errors.New("vacation entry must not have a pause")
	ErrPauseExceedsSpan  = errors.New("entry pause is longer than the worked span")
	ErrInvalidMonth      = errors.New("invalid month")
	ErrEntryOutsideMonth = errors.New("entry date outside timesheet month")
	ErrNegativeTransfer  = errors.New("transfer must not be negative")
	ErrInvalidArea       = errors.New("invalid working area")
	ErrNegativeWage      = errors.New("wage must not be negative")
	ErrNegativeMaxTime   = errors.New("maximum working time must not be negative")
)
