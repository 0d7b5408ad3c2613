package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/username/timesheet-checker/internal/timesheet"
	"github.com/username/timesheet-checker/pkg/dateutil"
	"github.com/username/timesheet-checker/pkg/worktime"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrMissingField is returned when a required document field is absent
var ErrMissingField = errors.New("missing required field")

// Format is the encoding of an input document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported file extension: %q", filepath.Ext(path))
	}
}

// Loader builds timesheets from global and month documents
type Loader struct {
	logger *zap.Logger
}

// New creates a new loader
func New(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadFiles reads both documents from disk and builds the timesheet
func (l *Loader) LoadFiles(globalPath, monthPath string) (*timesheet.TimeSheet, error) {
	var global GlobalDocument
	if err := readDocument(globalPath, &global); err != nil {
		return nil, fmt.Errorf("failed to load global file: %w", err)
	}

	var month MonthDocument
	if err := readDocument(monthPath, &month); err != nil {
		return nil, fmt.Errorf("failed to load month file: %w", err)
	}

	sheet, err := Build(global, month)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Timesheet loaded",
		zap.String("global_file", globalPath),
		zap.String("month_file", monthPath),
		zap.Int("year", sheet.Year()),
		zap.Int("month", int(sheet.Month())),
		zap.Int("entries", sheet.EntryCount()))

	return sheet, nil
}

// Decode reads both documents from readers and builds the timesheet
func (l *Loader) Decode(global io.Reader, globalFormat Format, month io.Reader, monthFormat Format) (*timesheet.TimeSheet, error) {
	var globalDoc GlobalDocument
	if err := decode(global, globalFormat, &globalDoc); err != nil {
		return nil, fmt.Errorf("failed to parse global document: %w", err)
	}

	var monthDoc MonthDocument
	if err := decode(month, monthFormat, &monthDoc); err != nil {
		return nil, fmt.Errorf("failed to parse month document: %w", err)
	}

	return Build(globalDoc, monthDoc)
}

func readDocument(path string, out interface{}) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := decode(bytes.NewReader(data), format, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func decode(r io.Reader, format Format, out interface{}) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(out)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		return dec.Decode(out)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

// Encode writes a document in the given format
func Encode(w io.Writer, format Format, doc interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

// Build validates the documents and assembles the timesheet
func Build(global GlobalDocument, month MonthDocument) (*timesheet.TimeSheet, error) {
	if global.WorkingTime == nil {
		return nil, fmt.Errorf("%w: workingTime", ErrMissingField)
	}

	area, err := timesheet.ParseWorkingArea(global.WorkingArea)
	if err != nil {
		return nil, fmt.Errorf("global document: %w", err)
	}

	profession, err := timesheet.NewProfession(global.Department, area, *global.WorkingTime, global.Wage)
	if err != nil {
		return nil, fmt.Errorf("global document: %w", err)
	}

	if month.Month < 1 || month.Month > 12 {
		return nil, fmt.Errorf("month document: %w: %d", timesheet.ErrInvalidMonth, month.Month)
	}

	entries := make([]timesheet.Entry, 0, len(month.Entries))
	for i, doc := range month.Entries {
		entry, err := buildEntry(month.Year, time.Month(month.Month), doc)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}

	sheet, err := timesheet.NewTimeSheet(
		timesheet.Employee{Name: global.Name, StaffID: global.StaffID},
		profession,
		month.Year,
		time.Month(month.Month),
		entries,
		spanOrZero(month.SuccTransfer),
		spanOrZero(month.PredTransfer),
	)
	if err != nil {
		return nil, fmt.Errorf("month document: %w", err)
	}
	return sheet, nil
}

func buildEntry(year int, month time.Month, doc EntryDocument) (timesheet.Entry, error) {
	if doc.Start == nil {
		return timesheet.Entry{}, fmt.Errorf("%w: start", ErrMissingField)
	}
	if doc.End == nil {
		return timesheet.Entry{}, fmt.Errorf("%w: end", ErrMissingField)
	}
	if doc.Day < 1 || doc.Day > dateutil.DaysInMonth(year, month) {
		return timesheet.Entry{}, fmt.Errorf("day %d is not in %d-%02d", doc.Day, year, month)
	}

	return timesheet.NewEntry(
		doc.Action,
		dateutil.Date(year, month, doc.Day),
		*doc.Start,
		*doc.End,
		spanOrZero(doc.Pause),
		doc.Vacation,
	)
}

func spanOrZero(span *worktime.TimeSpan) worktime.TimeSpan {
	if span == nil {
		return worktime.Minutes(0)
	}
	return *span
}
