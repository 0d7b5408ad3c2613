package loader

import "github.com/username/timesheet-checker/pkg/worktime"

// GlobalDocument holds the per-employee data that rarely changes
//
// Example (JSON):
//
//	{"name": "Max Mustermann", "staffId": 1234567, "department": "Fakultät für Informatik",
//	 "workingTime": "40:00", "wage": 12.00, "workingArea": "ub"}
type GlobalDocument struct {
	Name        string             `json:"name" yaml:"name"`
	StaffID     int                `json:"staffId" yaml:"staffId"`
	Department  string             `json:"department" yaml:"department"`
	WorkingTime *worktime.TimeSpan `json:"workingTime" yaml:"workingTime"`
	Wage        float64            `json:"wage" yaml:"wage"`
	WorkingArea string             `json:"workingArea" yaml:"workingArea"`
}

// MonthDocument holds one month of entries plus the transferred balances
type MonthDocument struct {
	Year         int                `json:"year" yaml:"year"`
	Month        int                `json:"month" yaml:"month"`
	PredTransfer *worktime.TimeSpan `json:"pred_transfer,omitempty" yaml:"pred_transfer,omitempty"`
	SuccTransfer *worktime.TimeSpan `json:"succ_transfer,omitempty" yaml:"succ_transfer,omitempty"`
	Entries      []EntryDocument    `json:"entries" yaml:"entries"`
}

// EntryDocument is one row of the month document
type EntryDocument struct {
	Action   string              `json:"action" yaml:"action"`
	Day      int                 `json:"day" yaml:"day"`
	Start    *worktime.ClockTime `json:"start" yaml:"start"`
	End      *worktime.ClockTime `json:"end" yaml:"end"`
	Pause    *worktime.TimeSpan  `json:"pause,omitempty" yaml:"pause,omitempty"`
	Vacation bool                `json:"vacation,omitempty" yaml:"vacation,omitempty"`
}
