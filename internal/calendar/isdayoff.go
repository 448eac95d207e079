package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/working-hours/pkg/dateutil"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultIsDayOffURL    = "https://isdayoff.ru"
	DefaultXMLCalendarURL = "https://xmlcalendar.ru/data/{country}/{year}/calendar.json"
	defaultHTTPTimeout    = 10 * time.Second
	defaultCacheTTL       = 24 * time.Hour

	nonWorkingDayName = "Non-working day"
)

// isdayoffCountries lists the country codes served by isdayoff.ru
var isdayoffCountries = map[string]bool{
	"by": true,
	"kz": true,
	"ru": true,
	"tr": true,
	"uz": true,
}

// IsDayOffProvider implements Provider using the isdayoff.ru production calendar API
// with xmlcalendar.ru as a fallback source
type IsDayOffProvider struct {
	baseURL     string
	fallbackURL string
	httpClient  *http.Client
	logger      *zap.Logger
	cache       map[string]*cachedYear
	cacheMu     sync.RWMutex
	cacheTTL    time.Duration
	group       singleflight.Group
}

type cachedYear struct {
	data      []Holiday
	fetchedAt time.Time
}

// xmlCalendarYear represents xmlcalendar.ru JSON structure
type xmlCalendarYear struct {
	Year      int                `json:"year"`
	Months    []xmlCalendarMonth `json:"months"`
	Statistic struct {
		Workdays int     `json:"workdays"`
		Holidays int     `json:"holidays"`
		Hours40  float64 `json:"hours40"`
	} `json:"statistic"`
}

type xmlCalendarMonth struct {
	Month int    `json:"month"`
	Days  string `json:"days"` // "1*,2,3+,4,8,9,..." where * = shortened, + = transferred
}

// NewIsDayOffProvider creates a new IsDayOffProvider instance.
// Empty URLs and a zero TTL fall back to the defaults.
func NewIsDayOffProvider(baseURL, fallbackURL string, cacheTTL time.Duration, logger *zap.Logger) *IsDayOffProvider {
	if baseURL == "" {
		baseURL = DefaultIsDayOffURL
	}
	if fallbackURL == "" {
		fallbackURL = DefaultXMLCalendarURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &IsDayOffProvider{
		baseURL:     strings.TrimRight(baseURL, "/"),
		fallbackURL: fallbackURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cache:    make(map[string]*cachedYear),
		cacheTTL: cacheTTL,
	}
}

// Countries returns the supported country codes in sorted order
func (p *IsDayOffProvider) Countries() []string {
	codes := make([]string, 0, len(isdayoffCountries))
	for code := range isdayoffCountries {
		codes = append(codes, strings.ToUpper(code))
	}
	sort.Strings(codes)
	return codes
}

// Holidays returns weekdays declared non-working for country in year
func (p *IsDayOffProvider) Holidays(country string, year int) ([]Holiday, error) {
	cc := strings.ToLower(country)
	if !isdayoffCountries[cc] {
		p.logger.Debug("Country not supported by isdayoff.ru",
			zap.String("country", country))
		return nil, nil
	}

	cacheKey := fmt.Sprintf("%s-%d", cc, year)

	p.cacheMu.RLock()
	if cached, ok := p.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < p.cacheTTL {
			p.cacheMu.RUnlock()
			p.logger.Debug("Using cached holidays",
				zap.String("key", cacheKey))
			return cached.data, nil
		}
	}
	p.cacheMu.RUnlock()

	// Concurrent callers for the same year share one download
	v, err, shared := p.group.Do(cacheKey, func() (interface{}, error) {
		holidays, err := p.fetchYear(cc, year)
		if err != nil {
			return nil, err
		}

		p.cacheMu.Lock()
		p.cache[cacheKey] = &cachedYear{
			data:      holidays,
			fetchedAt: time.Now(),
		}
		p.cacheMu.Unlock()

		return holidays, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.logger.Debug("Shared in-flight calendar download",
			zap.String("key", cacheKey))
	}

	return v.([]Holiday), nil
}

func (p *IsDayOffProvider) fetchYear(cc string, year int) ([]Holiday, error) {
	holidays, err := p.fetchYearFromAPI(cc, year)
	if err == nil {
		return holidays, nil
	}

	p.logger.Warn("Failed to fetch year from API, trying fallback",
		zap.String("country", cc),
		zap.Int("year", year),
		zap.Error(err))

	holidays, fallbackErr := p.fetchYearFromFallback(cc, year)
	if fallbackErr != nil {
		return nil, fmt.Errorf("API and fallback both failed: API=%w, Fallback=%v", err, fallbackErr)
	}

	p.logger.Info("Using fallback data",
		zap.String("country", cc),
		zap.Int("year", year))

	return holidays, nil
}

// fetchYearFromAPI fetches the whole year from isdayoff.ru bulk API
func (p *IsDayOffProvider) fetchYearFromAPI(cc string, year int) ([]Holiday, error) {
	// Build URL: https://isdayoff.ru/api/getdata?year=2025&cc=ru&pre=1
	url := fmt.Sprintf("%s/api/getdata?year=%d&cc=%s&pre=1", p.baseURL, year, cc)

	p.logger.Debug("Fetching year from isdayoff.ru",
		zap.String("url", url))

	resp, err := p.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	holidays, workingWeekends, err := parseBulkResponse(year, strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bulk response: %w", err)
	}
	for _, date := range workingWeekends {
		// Holidays only remove days, a transferred working weekend cannot be expressed
		p.logger.Debug("Ignoring working weekend day",
			zap.String("country", cc),
			zap.String("date", dateutil.DayKey(date)))
	}

	p.logger.Info("Holidays fetched from API",
		zap.String("country", cc),
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// parseBulkResponse parses isdayoff.ru bulk response string, one code per day of the year:
// 0 = working day, 1 = non-working day, 2 = shortened day, 4 = working day (special regime).
// Non-working weekdays become public holidays; weekends are left to the weekday rules.
// Weekend days marked as working are returned separately as workingWeekends.
func parseBulkResponse(year int, data string) (holidays []Holiday, workingWeekends []time.Time, err error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysInYear := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()

	if len(data) != daysInYear {
		return nil, nil, fmt.Errorf("bulk data length mismatch: expected %d, got %d", daysInYear, len(data))
	}

	for i, code := range data {
		date := start.AddDate(0, 0, i)

		switch code {
		case '0', '2', '4':
			if !dateutil.IsWeekday(date) {
				workingWeekends = append(workingWeekends, date)
			}
		case '1':
			if dateutil.IsWeekday(date) {
				holidays = append(holidays, Holiday{
					Date: date,
					Name: nonWorkingDayName,
					Type: HolidayTypePublic,
				})
			}
		default:
			return nil, nil, fmt.Errorf("unknown code '%c' at position %d", code, i)
		}
	}

	return holidays, workingWeekends, nil
}

// fetchYearFromFallback downloads the year from xmlcalendar.ru
func (p *IsDayOffProvider) fetchYearFromFallback(cc string, year int) ([]Holiday, error) {
	url := strings.NewReplacer(
		"{country}", cc,
		"{year}", strconv.Itoa(year),
	).Replace(p.fallbackURL)

	p.logger.Info("Downloading fallback calendar data",
		zap.String("url", url))

	resp, err := p.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fallback data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback API returned status %d", resp.StatusCode)
	}

	var yearData xmlCalendarYear
	if err := json.NewDecoder(resp.Body).Decode(&yearData); err != nil {
		return nil, fmt.Errorf("failed to parse fallback JSON: %w", err)
	}

	return parseXMLCalendarYear(year, &yearData)
}

// parseXMLCalendarYear parses xmlcalendar.ru compact format
// Format per month: "1*,2,3+,4,8,9,15,16,22,23,29,30"
// * = shortened day (working), + = transferred day off, others = weekends/holidays
func parseXMLCalendarYear(year int, yearData *xmlCalendarYear) ([]Holiday, error) {
	var holidays []Holiday

	for _, m := range yearData.Months {
		if m.Month < 1 || m.Month > 12 {
			return nil, fmt.Errorf("invalid month %d in fallback data", m.Month)
		}
		daysInMonth := dateutil.DaysInMonth(year, time.Month(m.Month))

		for _, part := range strings.Split(m.Days, ",") {
			part = strings.TrimSpace(part)
			if part == "" || strings.HasSuffix(part, "*") {
				continue
			}

			day, err := strconv.Atoi(strings.TrimSuffix(part, "+"))
			if err != nil {
				return nil, fmt.Errorf("failed to parse day %q of month %d: %w", part, m.Month, err)
			}
			if day < 1 || day > daysInMonth {
				return nil, fmt.Errorf("day %d out of range for month %d", day, m.Month)
			}

			date := time.Date(year, time.Month(m.Month), day, 0, 0, 0, 0, time.UTC)
			if !dateutil.IsWeekday(date) {
				continue
			}

			holidays = append(holidays, Holiday{
				Date: date,
				Name: nonWorkingDayName,
				Type: HolidayTypePublic,
			})
		}
	}

	return holidays, nil
}

// ClearCache clears the cache
func (p *IsDayOffProvider) ClearCache() {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	p.cache = make(map[string]*cachedYear)
	p.logger.Info("Calendar cache cleared")
}
