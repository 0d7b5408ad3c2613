package worktime

import (
	"errors"
	"testing"
)

func TestNewClockTime(t *testing.T) {
	tests := []struct {
		name         string
		hour, minute int
		wantErr      bool
	}{
		{"Midnight", 0, 0, false},
		{"Last minute", 23, 59, false},
		{"Hour 24", 24, 0, true},
		{"Minute 60", 12, 60, true},
		{"Negative hour", -1, 0, true},
		{"Negative minute", 0, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClockTime(tt.hour, tt.minute)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClockTime(%d, %d) error = %v, wantErr %v", tt.hour, tt.minute, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidClockTime) {
				t.Errorf("NewClockTime(%d, %d) error = %v, want ErrInvalidClockTime", tt.hour, tt.minute, err)
			}
		})
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Padded", "08:00", "08:00", false},
		{"Single digit hour", "8:05", "08:05", false},
		{"End of day", "23:59", "23:59", false},
		{"Hour 24", "24:00", "", true},
		{"Three digit hour", "100:00", "", true},
		{"Minute 60", "10:60", "", true},
		{"Negative", "-1:00", "", true},
		{"Empty", "", "", true},
		{"No colon", "1000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseClockTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ParseClockTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockTimeAdd(t *testing.T) {
	tests := []struct {
		name    string
		start   ClockTime
		span    TimeSpan
		want    string
		wantErr bool
	}{
		{"Within day", MustClockTime(8, 0), NewTimeSpan(4, 30), "12:30", false},
		{"Minute carry", MustClockTime(8, 45), Minutes(30), "09:15", false},
		{"Up to last minute", MustClockTime(23, 0), Minutes(59), "23:59", false},
		{"Exactly midnight", MustClockTime(23, 0), Minutes(60), "", true},
		{"Past midnight", MustClockTime(23, 30), NewTimeSpan(1, 0), "", true},
		{"Negative span", MustClockTime(8, 0), Minutes(-30), "07:30", false},
		{"Negative below zero", MustClockTime(0, 10), Minutes(-11), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.Add(tt.span)
			if (err != nil) != tt.wantErr {
				t.Errorf("%v.Add(%v) error = %v, wantErr %v", tt.start, tt.span, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfDayBounds) {
					t.Errorf("%v.Add(%v) error = %v, want ErrOutOfDayBounds", tt.start, tt.span, err)
				}
				return
			}
			if got.String() != tt.want {
				t.Errorf("%v.Add(%v) = %v, want %v", tt.start, tt.span, got, tt.want)
			}
		})
	}
}

func TestClockTimeAddExhaustiveBounds(t *testing.T) {
	// every start/offset combination either lands exactly or fails, never wraps
	for start := 0; start < minutesPerDay; start += 37 {
		ct := ClockTime{minutes: start}
		for offset := -2 * minutesPerDay; offset <= 2*minutesPerDay; offset += 53 {
			got, err := ct.Add(Minutes(offset))
			total := start + offset
			inDay := total >= 0 && total < minutesPerDay
			if inDay != (err == nil) {
				t.Fatalf("%v.Add(%d) error = %v, in day %v", ct, offset, err, inDay)
			}
			if inDay && (got.Hour() != total/60 || got.Minute() != total%60) {
				t.Fatalf("%v.Add(%d) = %v, want %d minutes", ct, offset, got, total)
			}
		}
	}
}

func TestClockTimeSub(t *testing.T) {
	got, err := MustClockTime(10, 15).Sub(Minutes(30))
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if got.String() != "09:45" {
		t.Errorf("Sub() = %v, want 09:45", got)
	}

	if _, err := MustClockTime(0, 30).Sub(Minutes(31)); !errors.Is(err, ErrOutOfDayBounds) {
		t.Errorf("Sub() error = %v, want ErrOutOfDayBounds", err)
	}
}

func TestClockTimeDifferenceTo(t *testing.T) {
	a := MustClockTime(8, 0)
	b := MustClockTime(12, 30)

	if got := a.DifferenceTo(b); got.String() != "04:30" {
		t.Errorf("DifferenceTo = %v, want 04:30", got)
	}
	if got := b.DifferenceTo(a); got.String() != "-04:30" {
		t.Errorf("DifferenceTo = %v, want -04:30", got)
	}
}

func TestClockTimeOrdering(t *testing.T) {
	a := MustParseClockTime("09:00")
	b := MustParseClockTime("09:01")

	if !a.Before(b) || !b.After(a) || a.Compare(b) != -1 || a.Compare(a) != 0 {
		t.Errorf("ordering mismatch for %v and %v", a, b)
	}
	if got := LaterOf(a, b); got != b {
		t.Errorf("LaterOf = %v, want %v", got, b)
	}
}
