package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/username/timesheet-checker/pkg/dateutil"
	"go.uber.org/zap"
)

const feiertage2019BW = `{
  "Neujahrstag": {"datum": "2019-01-01", "hinweis": ""},
  "Heilige Drei Könige": {"datum": "2019-01-06", "hinweis": ""},
  "Karfreitag": {"datum": "2019-04-19", "hinweis": ""},
  "1. Weihnachtstag": {"datum": "2019-12-25", "hinweis": ""},
  "2. Weihnachtstag": {"datum": "2019-12-26", "hinweis": ""}
}`

func newTestFeiertage(t *testing.T, handler http.HandlerFunc) *FeiertageCalendar {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cal := NewFeiertageCalendar(server.URL+"/api/", "BW", time.Hour, zap.NewNop())
	cal.retryDelay = 0
	return cal
}

func TestFeiertageCalendar_IsHoliday(t *testing.T) {
	var requests int32
	cal := newTestFeiertage(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if got := r.URL.Query().Get("jahr"); got != "2019" {
			t.Errorf("jahr = %q, want 2019", got)
		}
		if got := r.URL.Query().Get("nur_land"); got != "BW" {
			t.Errorf("nur_land = %q, want BW", got)
		}
		fmt.Fprint(w, feiertage2019BW)
	})

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"Christmas", dateutil.Date(2019, 12, 25), true},
		{"Epiphany", dateutil.Date(2019, 1, 6), true},
		{"Ordinary Friday", dateutil.Date(2019, 11, 22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.IsHoliday(tt.date)
			if err != nil {
				t.Fatalf("IsHoliday() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsHoliday(%s) = %v, want %v", dateutil.DateKey(tt.date), got, tt.want)
			}
		})
	}

	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("API requests = %d, want 1 (year must be cached)", n)
	}
}

func TestFeiertageCalendar_Holidays(t *testing.T) {
	cal := newTestFeiertage(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feiertage2019BW)
	})

	holidays, err := cal.Holidays(2019)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	if len(holidays) != 5 {
		t.Fatalf("Holidays() count = %d, want 5", len(holidays))
	}
	if holidays[0].Name != "Neujahrstag" || holidays[4].Name != "2. Weihnachtstag" {
		t.Errorf("Holidays() not ordered by date: %v", holidays)
	}
}

func TestFeiertageCalendar_RetriesThenFails(t *testing.T) {
	var requests int32
	cal := newTestFeiertage(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	_, err := cal.IsHoliday(dateutil.Date(2019, 12, 25))
	if err == nil {
		t.Fatal("IsHoliday() expected error for failing API, got nil")
	}
	if n := atomic.LoadInt32(&requests); n != defaultRetries {
		t.Errorf("API requests = %d, want %d", n, defaultRetries)
	}
}

func TestFeiertageCalendar_RetryRecovers(t *testing.T) {
	var requests int32
	cal := newTestFeiertage(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, feiertage2019BW)
	})

	got, err := cal.IsHoliday(dateutil.Date(2019, 12, 26))
	if err != nil {
		t.Fatalf("IsHoliday() error = %v", err)
	}
	if !got {
		t.Error("IsHoliday(2019-12-26) = false, want true")
	}
}

func TestFeiertageCalendar_MalformedResponse(t *testing.T) {
	cal := newTestFeiertage(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Neujahrstag": {"datum": "01.01.2019"}}`)
	})

	if _, err := cal.Holidays(2019); err == nil {
		t.Error("Holidays() expected error for malformed date, got nil")
	}
}

func TestFeiertageCalendar_CacheExpires(t *testing.T) {
	var requests int32
	cal := newTestFeiertage(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, feiertage2019BW)
	})
	cal.cacheTTL = time.Nanosecond

	for i := 0; i < 2; i++ {
		if _, err := cal.Holidays(2019); err != nil {
			t.Fatalf("Holidays() error = %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("API requests = %d, want 2 after cache expiry", n)
	}
}

func TestFeiertageCalendar_StateNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("nur_land"); got != "BW" {
			t.Errorf("nur_land = %q, want BW", got)
		}
		fmt.Fprint(w, feiertage2019BW)
	}))
	defer server.Close()

	cal := NewFeiertageCalendar(server.URL+"/api/", " bw", time.Hour, zap.NewNop())
	got, err := cal.IsHoliday(dateutil.Date(2019, 1, 6))
	if err != nil || !got {
		t.Errorf("IsHoliday(2019-01-06) = %v, %v; want true, nil", got, err)
	}
}

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2019, dateutil.Date(2019, time.April, 21)},
		{2020, dateutil.Date(2020, time.April, 12)},
		{2024, dateutil.Date(2024, time.March, 31)},
		{2025, dateutil.Date(2025, time.April, 20)},
	}

	for _, tt := range tests {
		if got := EasterSunday(tt.year); !got.Equal(tt.want) {
			t.Errorf("EasterSunday(%d) = %v, want %v", tt.year, dateutil.DateKey(got), dateutil.DateKey(tt.want))
		}
	}
}

func TestGermanCalendar_IsHoliday(t *testing.T) {
	tests := []struct {
		name  string
		state string
		date  time.Time
		want  bool
	}{
		{"Christmas federal", "", dateutil.Date(2019, 12, 25), true},
		{"Good Friday", "BW", dateutil.Date(2019, 4, 19), true},
		{"Whit Monday", "BW", dateutil.Date(2019, 6, 10), true},
		{"Corpus Christi in BW", "BW", dateutil.Date(2019, 6, 20), true},
		{"Corpus Christi not in BE", "BE", dateutil.Date(2019, 6, 20), false},
		{"Women's day in BE 2019", "BE", dateutil.Date(2019, 3, 8), true},
		{"Women's day not in BE 2018", "BE", dateutil.Date(2018, 3, 8), false},
		{"Repentance day in SN", "SN", dateutil.Date(2019, 11, 20), true},
		{"Reformation 2017 everywhere", "BW", dateutil.Date(2017, 10, 31), true},
		{"Reformation 2019 not in BW", "BW", dateutil.Date(2019, 10, 31), false},
		{"All Saints in BW", "BW", dateutil.Date(2019, 11, 1), true},
		{"Ordinary Friday", "BW", dateutil.Date(2019, 11, 22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, err := NewGermanCalendar(tt.state)
			if err != nil {
				t.Fatalf("NewGermanCalendar(%q) error = %v", tt.state, err)
			}
			got, err := cal.IsHoliday(tt.date)
			if err != nil {
				t.Fatalf("IsHoliday() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsHoliday(%s) in %q = %v, want %v", dateutil.DateKey(tt.date), tt.state, got, tt.want)
			}
		})
	}
}

func TestGermanCalendar_UnknownState(t *testing.T) {
	if _, err := NewGermanCalendar("XX"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("NewGermanCalendar(XX) error = %v, want ErrUnknownState", err)
	}
	if _, err := NewGermanCalendar("bw"); err != nil {
		t.Errorf("NewGermanCalendar(bw) error = %v, want nil", err)
	}
}

func TestGermanCalendar_HolidaysCount(t *testing.T) {
	cal, _ := NewGermanCalendar("BW")
	holidays, err := cal.Holidays(2019)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	// 9 federal + Epiphany, Corpus Christi, All Saints
	if len(holidays) != 12 {
		t.Errorf("Holidays(2019) in BW count = %d, want 12", len(holidays))
	}
	for i := 1; i < len(holidays); i++ {
		if holidays[i].Date.Before(holidays[i-1].Date) {
			t.Fatalf("Holidays() not ordered: %v before %v", holidays[i-1], holidays[i])
		}
	}
}

func writeHolidayFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holidays.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestFileCalendar(t *testing.T) {
	path := writeHolidayFile(t, `# holidays
2019-12-25 1. Weihnachtstag
2019-12-26 2. Weihnachtstag

not-a-date Broken
2019-01-01 Neujahrstag
03.10.2019 Tag der Deutschen Einheit
`)

	cal := NewFileCalendar(path, zap.NewNop())
	if err := cal.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got, err := cal.IsHoliday(dateutil.Date(2019, 12, 25))
	if err != nil || !got {
		t.Errorf("IsHoliday(2019-12-25) = %v, %v; want true, nil", got, err)
	}
	got, err = cal.IsHoliday(dateutil.Date(2019, 12, 24))
	if err != nil || got {
		t.Errorf("IsHoliday(2019-12-24) = %v, %v; want false, nil", got, err)
	}
	if _, err := cal.IsHoliday(dateutil.Date(2020, 1, 1)); !errors.Is(err, ErrYearNotCovered) {
		t.Errorf("IsHoliday(2020-01-01) error = %v, want ErrYearNotCovered", err)
	}

	holidays, err := cal.Holidays(2019)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	if len(holidays) != 4 || holidays[0].Name != "Neujahrstag" {
		t.Errorf("Holidays(2019) = %v, want 4 ordered holidays", holidays)
	}
	if got, err := cal.IsHoliday(dateutil.Date(2019, 10, 3)); err != nil || !got {
		t.Errorf("IsHoliday(2019-10-03) = %v, %v; want true from DD.MM.YYYY line", got, err)
	}
}

func TestFileCalendar_MissingFile(t *testing.T) {
	cal := NewFileCalendar(filepath.Join(t.TempDir(), "missing.txt"), zap.NewNop())
	if err := cal.Load(); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

type stubCalendar struct {
	holiday bool
	err     error
}

func (s stubCalendar) IsHoliday(time.Time) (bool, error) { return s.holiday, s.err }
func (s stubCalendar) Holidays(int) ([]Holiday, error)   { return nil, s.err }

func TestCompositeCalendar(t *testing.T) {
	failing := stubCalendar{err: errors.New("network down")}
	date := dateutil.Date(2019, 12, 25)

	tests := []struct {
		name     string
		primary  Calendar
		fallback Calendar
		want     bool
		wantErr  bool
	}{
		{"Primary answers", stubCalendar{holiday: true}, failing, true, false},
		{"Fallback answers", failing, stubCalendar{holiday: true}, true, false},
		{"Both fail", failing, failing, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := NewCompositeCalendar(zap.NewNop(), tt.primary, tt.fallback)
			got, err := cal.IsHoliday(date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsHoliday() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsHoliday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompositeCalendar_ErrorsJoined(t *testing.T) {
	first := errors.New("network down")
	second := ErrYearNotCovered
	cal := NewCompositeCalendar(zap.NewNop(), stubCalendar{err: first}, stubCalendar{err: second})

	_, err := cal.Holidays(2019)
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Errorf("Holidays() error = %v, want both causes", err)
	}
}

func TestCompositeCalendar_ChainOrder(t *testing.T) {
	failing := stubCalendar{err: errors.New("down")}
	german, err := NewGermanCalendar("BW")
	if err != nil {
		t.Fatal(err)
	}
	cal := NewCompositeCalendar(zap.NewNop(), failing, failing, german)

	got, err := cal.IsHoliday(dateutil.Date(2019, 11, 1))
	if err != nil || !got {
		t.Errorf("IsHoliday(2019-11-01) = %v, %v; want true from third calendar", got, err)
	}
}

func TestCompositeCalendar_Empty(t *testing.T) {
	if _, err := NewCompositeCalendar(zap.NewNop()).IsHoliday(dateutil.Date(2019, 1, 1)); !errors.Is(err, ErrNoCalendar) {
		t.Errorf("IsHoliday() error = %v, want ErrNoCalendar", err)
	}
}

func TestCompositeCalendar_LoadFiles(t *testing.T) {
	path := writeHolidayFile(t, "2019-12-25 1. Weihnachtstag\n")
	cal := NewCompositeCalendar(zap.NewNop(), stubCalendar{err: errors.New("down")}, NewFileCalendar(path, zap.NewNop()))

	if err := cal.LoadFiles(); err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	holidays, err := cal.Holidays(2019)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	if len(holidays) != 1 {
		t.Errorf("Holidays() = %v, want 1 holiday from fallback", holidays)
	}
}

func TestCompositeCalendar_LoadFilesMissing(t *testing.T) {
	cal := NewCompositeCalendar(zap.NewNop(), NewFileCalendar(filepath.Join(t.TempDir(), "missing.txt"), zap.NewNop()))
	if err := cal.LoadFiles(); err == nil {
		t.Error("LoadFiles() expected error for missing file")
	}
}
