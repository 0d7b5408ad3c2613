package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/username/timesheet-checker/pkg/dateutil"
	"go.uber.org/zap"
)

// FileCalendar implements Calendar interface using a local text file
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	data     map[int][]Holiday // key: year
	byDate   map[string]Holiday
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int][]Holiday),
		byDate:   make(map[string]Holiday),
	}
}

// Load loads holiday data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD name or DD.MM.YYYY name
		// Example: 2019-12-25 1. Weihnachtstag
		parts := strings.SplitN(line, " ", 2)
		date, err := dateutil.ParseDate(parts[0])
		if err != nil {
			fc.logger.Warn("Failed to parse date", zap.String("line", line), zap.Error(err))
			continue
		}

		name := ""
		if len(parts) == 2 {
			name = strings.TrimSpace(parts[1])
		}

		holiday := Holiday{Date: date, Name: name}
		fc.data[date.Year()] = append(fc.data[date.Year()], holiday)
		fc.byDate[dateutil.DateKey(date)] = holiday
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	for year := range fc.data {
		sortHolidays(fc.data[year])
	}

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("years", len(fc.data)),
		zap.Int("holidays", len(fc.byDate)))

	return nil
}

// IsHoliday checks if the given date is a public holiday.
// Years absent from the file are an error rather than "no holiday".
func (fc *FileCalendar) IsHoliday(date time.Time) (bool, error) {
	if _, ok := fc.data[date.Year()]; !ok {
		return false, fmt.Errorf("%w: %d in %s", ErrYearNotCovered, date.Year(), fc.filePath)
	}

	_, ok := fc.byDate[dateutil.DateKey(date)]
	return ok, nil
}

// Holidays returns all public holidays of the year
func (fc *FileCalendar) Holidays(year int) ([]Holiday, error) {
	holidays, ok := fc.data[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d in %s", ErrYearNotCovered, year, fc.filePath)
	}
	return append([]Holiday(nil), holidays...), nil
}
