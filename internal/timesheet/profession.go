package timesheet

import (
	"fmt"
	"strings"

	"github.com/username/timesheet-checker/pkg/worktime"
)

// WorkingArea classifies the employment category
type WorkingArea string

const (
	// AreaUB is "Unterstützung in Bereichen" (research/teaching support)
	AreaUB WorkingArea = "UB"
	// AreaGF is "Großforschung" (large-scale research)
	AreaGF WorkingArea = "GF"
)

// ParseWorkingArea parses "ub"/"gf" case-insensitively
func ParseWorkingArea(s string) (WorkingArea, error) {
	switch WorkingArea(strings.ToUpper(strings.TrimSpace(s))) {
	case AreaUB:
		return AreaUB, nil
	case AreaGF:
		return AreaGF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidArea, s)
	}
}

// Employee identifies the person the timesheet belongs to
type Employee struct {
	Name    string
	StaffID int
}

// Profession describes the employment contract
type Profession struct {
	Department     string
	Area           WorkingArea
	MaxWorkingTime worktime.TimeSpan // monthly budget
	Wage           float64           // hourly wage in EUR
}

// NewProfession validates and creates a profession.
// A blank department is accepted here; the checker reports it.
func NewProfession(department string, area WorkingArea, maxWorkingTime worktime.TimeSpan, wage float64) (Profession, error) {
	if area != AreaUB && area != AreaGF {
		return Profession{}, fmt.Errorf("%w: %q", ErrInvalidArea, area)
	}
	if maxWorkingTime.IsNegative() {
		return Profession{}, fmt.Errorf("%w: %s", ErrNegativeMaxTime, maxWorkingTime)
	}
	if wage < 0 {
		return Profession{}, fmt.Errorf("%w: %.2f", ErrNegativeWage, wage)
	}

	return Profession{
		Department:     department,
		Area:           area,
		MaxWorkingTime: maxWorkingTime,
		Wage:           wage,
	}, nil
}
