package report

import (
	"fmt"
	"strings"

	"github.com/username/timesheet-checker/internal/checker"
	"github.com/username/timesheet-checker/pkg/dateutil"
)

// Language selects the message catalogue
type Language string

const (
	German  Language = "de"
	English Language = "en"
)

// ParseLanguage accepts "de" or "en", case-insensitively. Empty means German.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "", German:
		return German, nil
	case English:
		return English, nil
	default:
		return "", fmt.Errorf("unsupported language: %q", s)
	}
}

type catalogue struct {
	messages map[checker.Kind]string
	title    string
	employee string
	unit     string
	worked   string
	vacation string
	allowed  string
	verdict  map[checker.Verdict]string
	noErrors string
}

var catalogues = map[Language]catalogue{
	German: {
		messages: map[checker.Kind]string{
			checker.NameMissing:                "Der Name der Organisationseinheit fehlt.",
			checker.RowNumExceedance:           "Die Anzahl der Einträge überschreitet das Maximum von %[3]d.",
			checker.TimeOutOfBounds:            "Am %[1]s liegt die Arbeitszeit außerhalb von %[4]s bis %[5]s Uhr.",
			checker.DayTimeExceedance:          "Am %[1]s wurde die maximale Tagesarbeitszeit von %[2]s überschritten.",
			checker.TimePause:                  "Am %[1]s wurde die gesetzliche Pausenzeit nicht eingehalten.",
			checker.TotalTimeExceedance:        "Die erlaubte Arbeitszeit von %[2]s wurde um %[6]s überschritten.",
			checker.AllowedWorkingTimeNegative: "Die erlaubte Arbeitszeit ist negativ. Bitte den Übertrag prüfen.",
			checker.TimeOverlap:                "Am %[1]s überschneiden sich Einträge.",
			checker.TimeSunday:                 "Der %[1]s ist ein Sonntag.",
			checker.TimeHoliday:                "Der %[1]s ist ein gesetzlicher Feiertag.",
		},
		title:    "Stundenzettel",
		employee: "Mitarbeiter",
		unit:     "Organisationseinheit",
		worked:   "Arbeitszeit",
		vacation: "Urlaub",
		allowed:  "Erlaubt",
		verdict: map[checker.Verdict]string{
			checker.Valid:   "gültig",
			checker.Invalid: "ungültig",
		},
		noErrors: "Keine Fehler gefunden.",
	},
	English: {
		messages: map[checker.Kind]string{
			checker.NameMissing:                "The department name is missing.",
			checker.RowNumExceedance:           "The number of entries exceeds the maximum of %[3]d.",
			checker.TimeOutOfBounds:            "On %[1]s work falls outside %[4]s to %[5]s.",
			checker.DayTimeExceedance:          "On %[1]s the daily maximum of %[2]s was exceeded.",
			checker.TimePause:                  "On %[1]s the required break was not taken.",
			checker.TotalTimeExceedance:        "The allowed working time of %[2]s was exceeded by %[6]s.",
			checker.AllowedWorkingTimeNegative: "The allowed working time is negative. Check the transfers.",
			checker.TimeOverlap:                "On %[1]s entries overlap.",
			checker.TimeSunday:                 "%[1]s is a Sunday.",
			checker.TimeHoliday:                "%[1]s is a public holiday.",
		},
		title:    "Timesheet",
		employee: "Employee",
		unit:     "Department",
		worked:   "Working time",
		vacation: "Vacation",
		allowed:  "Allowed",
		verdict: map[checker.Verdict]string{
			checker.Valid:   "valid",
			checker.Invalid: "invalid",
		},
		noErrors: "No errors found.",
	},
}

// Message renders one violation in the given language
func Message(lang Language, e checker.Error) string {
	cat, ok := catalogues[lang]
	if !ok {
		cat = catalogues[German]
	}

	format, ok := cat.messages[e.Kind]
	if !ok {
		return e.Error()
	}

	if !strings.Contains(format, "%") {
		return format
	}

	date := ""
	if e.HasDate() {
		date = dateutil.FormatGerman(e.Date)
	}

	// Formats pick their arguments by index
	return fmt.Sprintf(format,
		date,
		e.Allowed,
		e.Limit,
		checker.WorkdayLowerBound,
		checker.WorkdayUpperBound,
		e.Amount,
	)
}
