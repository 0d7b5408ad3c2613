package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/timesheet-checker/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	// DefaultFeiertageURL is the public feiertage-api.de endpoint
	DefaultFeiertageURL = "https://feiertage-api.de/api/"
	defaultHTTPTimeout  = 10 * time.Second
	defaultCacheTTL     = 24 * time.Hour
	defaultRetries      = 3
)

// FeiertageCalendar implements Calendar using the feiertage-api.de REST API
type FeiertageCalendar struct {
	apiURL     string
	state      string
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[int]*cachedYear
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
	retries    int
	retryDelay time.Duration
}

type cachedYear struct {
	holidays  []Holiday
	byDate    map[string]Holiday
	fetchedAt time.Time
}

// feiertageHoliday is one value of the API response object.
// Response: {"Neujahrstag": {"datum": "2019-01-01", "hinweis": ""}, ...}
type feiertageHoliday struct {
	Datum   string `json:"datum"`
	Hinweis string `json:"hinweis"`
}

// NewFeiertageCalendar creates a new FeiertageCalendar for a German state code (e.g. "BW").
// The code is upper-cased, the API only knows "BW", not "bw".
func NewFeiertageCalendar(apiURL, state string, cacheTTL time.Duration, logger *zap.Logger) *FeiertageCalendar {
	if apiURL == "" {
		apiURL = DefaultFeiertageURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &FeiertageCalendar{
		apiURL: apiURL,
		state:  strings.ToUpper(strings.TrimSpace(state)),
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:     logger,
		cache:      make(map[int]*cachedYear),
		cacheTTL:   cacheTTL,
		retries:    defaultRetries,
		retryDelay: time.Second,
	}
}

// IsHoliday checks if the given date is a public holiday
func (c *FeiertageCalendar) IsHoliday(date time.Time) (bool, error) {
	year, err := c.year(date.Year())
	if err != nil {
		return false, err
	}

	_, ok := year.byDate[dateutil.DateKey(date)]
	return ok, nil
}

// Holidays returns all public holidays of the year
func (c *FeiertageCalendar) Holidays(year int) ([]Holiday, error) {
	cached, err := c.year(year)
	if err != nil {
		return nil, err
	}
	return append([]Holiday(nil), cached.holidays...), nil
}

func (c *FeiertageCalendar) year(year int) (*cachedYear, error) {
	c.cacheMu.RLock()
	if cached, ok := c.cache[year]; ok {
		if time.Since(cached.fetchedAt) < c.cacheTTL {
			c.cacheMu.RUnlock()
			c.logger.Debug("Using cached holidays",
				zap.Int("year", year))
			return cached, nil
		}
	}
	c.cacheMu.RUnlock()

	holidays, err := c.fetchYear(year)
	if err != nil {
		return nil, err
	}

	cached := &cachedYear{
		holidays:  holidays,
		byDate:    make(map[string]Holiday, len(holidays)),
		fetchedAt: time.Now(),
	}
	for _, h := range holidays {
		cached.byDate[dateutil.DateKey(h.Date)] = h
	}

	c.cacheMu.Lock()
	c.cache[year] = cached
	c.cacheMu.Unlock()

	return cached, nil
}

// fetchYear fetches the year with retries
func (c *FeiertageCalendar) fetchYear(year int) ([]Holiday, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		holidays, err := c.fetchYearOnce(year)
		if err == nil {
			return holidays, nil
		}

		lastErr = err
		c.logger.Warn("Holiday request failed, retrying",
			zap.Int("year", year),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.retries),
			zap.Error(err))

		if attempt < c.retries {
			time.Sleep(c.retryDelay * time.Duration(attempt))
		}
	}

	return nil, fmt.Errorf("holiday request failed after %d attempts: %w", c.retries, lastErr)
}

func (c *FeiertageCalendar) fetchYearOnce(year int) ([]Holiday, error) {
	query := url.Values{}
	query.Set("jahr", strconv.Itoa(year))
	if c.state != "" {
		query.Set("nur_land", c.state)
	}
	reqURL := c.apiURL + "?" + query.Encode()

	c.logger.Debug("Fetching holidays from feiertage-api.de",
		zap.String("url", reqURL),
		zap.Int("year", year),
		zap.String("state", c.state))

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	holidays, err := parseFeiertageResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Holidays fetched from API",
		zap.Int("year", year),
		zap.String("state", c.state),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

func parseFeiertageResponse(body []byte) ([]Holiday, error) {
	var raw map[string]feiertageHoliday
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	holidays := make([]Holiday, 0, len(raw))
	for name, entry := range raw {
		date, err := time.Parse(dateutil.KeyLayout, entry.Datum)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date %q of %q: %w", entry.Datum, name, err)
		}
		holidays = append(holidays, Holiday{Date: date, Name: name})
	}

	sortHolidays(holidays)
	return holidays, nil
}

func sortHolidays(holidays []Holiday) {
	sort.Slice(holidays, func(i, j int) bool {
		if holidays[i].Date.Equal(holidays[j].Date) {
			return holidays[i].Name < holidays[j].Name
		}
		return holidays[i].Date.Before(holidays[j].Date)
	})
}
