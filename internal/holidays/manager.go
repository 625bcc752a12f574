// ABOUTME: Holiday manager backed by rickar/cal US definitions plus custom entries.
// ABOUTME: Maps ISO dates to holiday names for the holiday panel, cached per year.

package holidays

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

const isoDate = "2006-01-02"

// Upcoming is one future holiday with its countdown.
type Upcoming struct {
	Date    time.Time
	Name    string
	DaysOut int
}

// Manager resolves holiday names by date. Custom entries (company closures)
// overlay the US calendar definitions.
type Manager struct {
	calendar *cal.Calendar

	mu     sync.Mutex
	custom map[string]string // ISO date -> name
	byYear map[int]map[string]string
}

// Option configures the Manager.
type Option func(*Manager)

// WithCustom adds fixed-date entries, ISO date to name.
func WithCustom(entries map[string]string) Option {
	return func(m *Manager) {
		for date, name := range entries {
			m.custom[date] = name
		}
	}
}

// NewManager builds a Manager over the US holiday calendar, merging any
// custom entries from options and from the ROTA_EXTRA_HOLIDAYS environment
// variable (comma-separated date=name pairs).
func NewManager(opts ...Option) *Manager {
	c := &cal.Calendar{Name: "rota"}
	c.AddHoliday(us.Holidays...)

	m := &Manager{
		calendar: c,
		custom:   make(map[string]string),
		byYear:   make(map[int]map[string]string),
	}
	for date, name := range parseExtraHolidays(os.Getenv("ROTA_EXTRA_HOLIDAYS")) {
		m.custom[date] = name
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// parseExtraHolidays reads "2026-12-24=Company Closure,2026-12-31=Year End".
func parseExtraHolidays(raw string) map[string]string {
	entries := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		date, name, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			continue
		}
		if _, err := time.Parse(isoDate, date); err != nil {
			continue
		}
		entries[date] = name
	}
	return entries
}

// Holidays returns the ISO date to holiday name mapping for a year. Results
// are cached; custom entries win over calendar definitions on collision.
func (m *Manager) Holidays(year int) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cached, ok := m.byYear[year]; ok {
		return cached
	}

	byDate := make(map[string]string)
	for _, h := range m.calendar.Holidays {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		byDate[actual.Format(isoDate)] = h.Name
	}
	yearPrefix := fmt.Sprintf("%04d-", year)
	for date, name := range m.custom {
		if strings.HasPrefix(date, yearPrefix) {
			byDate[date] = name
		}
	}

	m.byYear[year] = byDate
	return byDate
}

// Name returns the holiday name for a day, empty when it is not a holiday.
func (m *Manager) Name(day time.Time) string {
	return m.Holidays(day.Year())[day.Format(isoDate)]
}

// Between flattens the mapping across a date range, inclusive.
func (m *Manager) Between(start, end time.Time) map[string]string {
	out := make(map[string]string)
	for year := start.Year(); year <= end.Year(); year++ {
		for date, name := range m.Holidays(year) {
			if date >= start.Format(isoDate) && date <= end.Format(isoDate) {
				out[date] = name
			}
		}
	}
	return out
}

// Next lists the n holidays on or after from, soonest first.
func (m *Manager) Next(from time.Time, n int) []Upcoming {
	var upcoming []Upcoming
	fromISO := from.Format(isoDate)

	for year := from.Year(); year <= from.Year()+1; year++ {
		for date, name := range m.Holidays(year) {
			if date < fromISO {
				continue
			}
			day, err := time.Parse(isoDate, date)
			if err != nil {
				continue
			}
			upcoming = append(upcoming, Upcoming{
				Date:    day,
				Name:    name,
				DaysOut: int(day.Sub(from.Truncate(24*time.Hour)).Hours() / 24),
			})
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}
