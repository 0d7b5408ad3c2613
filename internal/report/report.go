package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/username/timesheet-checker/internal/checker"
	"github.com/username/timesheet-checker/internal/timesheet"
	"github.com/username/timesheet-checker/pkg/dateutil"
	"github.com/username/timesheet-checker/pkg/worktime"
)

// Reporter renders check results for humans and machines
type Reporter struct {
	lang Language
}

// New creates a reporter for the language
func New(lang Language) *Reporter {
	if _, ok := catalogues[lang]; !ok {
		lang = German
	}
	return &Reporter{lang: lang}
}

// Language returns the reporter's language
func (r *Reporter) Language() Language {
	return r.lang
}

// Message renders one violation
func (r *Reporter) Message(e checker.Error) string {
	return Message(r.lang, e)
}

// WriteText prints a header for the sheet, the verdict and every violation
func (r *Reporter) WriteText(w io.Writer, sheet *timesheet.TimeSheet, result *checker.Result) error {
	cat := catalogues[r.lang]
	var b strings.Builder

	employee := sheet.Employee()
	fmt.Fprintf(&b, "%s %02d/%d\n", cat.title, int(sheet.Month()), sheet.Year())
	fmt.Fprintf(&b, "%s: %s (%d)\n", cat.employee, employee.Name, employee.StaffID)
	fmt.Fprintf(&b, "%s: %s [%s]\n", cat.unit, sheet.Profession().Department, sheet.Profession().Area)
	fmt.Fprintf(&b, "%s: %s, %s: %s, %s: %s\n",
		cat.worked, sheet.TotalWorkTime(),
		cat.vacation, sheet.TotalVacationTime(),
		cat.allowed, checker.AllowedWorkingTime(sheet))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s: %s\n", result.Verdict, cat.verdict[result.Verdict])
	if len(result.Errors) == 0 {
		b.WriteString(cat.noErrors + "\n")
	}
	for _, e := range result.Errors {
		fmt.Fprintf(&b, "  - [%s] %s\n", e.Kind, Message(r.lang, e))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type jsonResult struct {
	Verdict checker.Verdict `json:"verdict"`
	Errors  []jsonError     `json:"errors"`
}

type jsonError struct {
	Kind    checker.Kind       `json:"kind"`
	Date    string             `json:"date,omitempty"`
	Allowed *worktime.TimeSpan `json:"allowed,omitempty"`
	Amount  *worktime.TimeSpan `json:"amount,omitempty"`
	Limit   int                `json:"limit,omitempty"`
	Message string             `json:"message"`
}

// WriteJSON emits the result as a single JSON object
func (r *Reporter) WriteJSON(w io.Writer, result *checker.Result) error {
	out := jsonResult{
		Verdict: result.Verdict,
		Errors:  make([]jsonError, 0, len(result.Errors)),
	}

	for _, e := range result.Errors {
		je := jsonError{
			Kind:    e.Kind,
			Limit:   e.Limit,
			Message: Message(r.lang, e),
		}
		if e.HasDate() {
			je.Date = dateutil.DateKey(e.Date)
		}
		switch e.Kind {
		case checker.DayTimeExceedance:
			je.Allowed = spanPtr(e.Allowed)
		case checker.TotalTimeExceedance:
			je.Allowed = spanPtr(e.Allowed)
			je.Amount = spanPtr(e.Amount)
		}
		out.Errors = append(out.Errors, je)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func spanPtr(span worktime.TimeSpan) *worktime.TimeSpan {
	return &span
}
