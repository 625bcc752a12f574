// ABOUTME: Holiday panel rendering a month grid with holidays named and highlighted.
// ABOUTME: Includes an upcoming-holidays list with weekday and countdown.

package panel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/2389/rota/internal/holidays"
	"github.com/2389/rota/internal/schedule"
)

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// HolidayPanel renders the month grid for a holiday calendar.
type HolidayPanel struct {
	manager *holidays.Manager
	now     func() time.Time
}

// HolidayOption configures a HolidayPanel.
type HolidayOption func(*HolidayPanel)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) HolidayOption {
	return func(p *HolidayPanel) {
		p.now = now
	}
}

// NewHolidayPanel constructs the panel over a holiday manager.
func NewHolidayPanel(m *holidays.Manager, opts ...HolidayOption) *HolidayPanel {
	p := &HolidayPanel{manager: m, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render writes the month grid and the upcoming-holidays list for the given
// month to w.
func (p *HolidayPanel) Render(w io.Writer, year int, month time.Month) error {
	window := schedule.MonthWindow(year, month)
	byDate := p.manager.Between(window.Start, window.End)
	today := p.now()

	title := fmt.Sprintf("%s %d", month, year)
	fmt.Fprintln(w, titleStyle.Render(title))

	var header strings.Builder
	for _, wd := range weekdayHeader {
		header.WriteString(fmt.Sprintf("%4s", wd))
	}
	fmt.Fprintln(w, headerStyle.Render(header.String()))

	for _, week := range window.Weeks() {
		var row strings.Builder
		for _, day := range week {
			row.WriteString(p.renderDay(day, month, byDate, today))
		}
		fmt.Fprintln(w, row.String())
	}

	// Name every holiday visible in the grid, in date order.
	for _, day := range window.Days() {
		if name, ok := byDate[schedule.ISODate(day)]; ok {
			line := fmt.Sprintf("  %s  %s", day.Format("Jan 02"), name)
			fmt.Fprintln(w, holidayStyle.Render(line))
		}
	}

	return p.renderUpcoming(w, today)
}

func (p *HolidayPanel) renderDay(day time.Time, month time.Month, byDate map[string]string, today time.Time) string {
	cell := fmt.Sprintf("%4d", day.Day())
	switch {
	case schedule.ISODate(day) == schedule.ISODate(today):
		return todayStyle.Render(cell)
	case byDate[schedule.ISODate(day)] != "":
		return holidayStyle.Render(cell)
	case day.Month() != month:
		return dimStyle.Render(cell)
	}
	return cell
}

func (p *HolidayPanel) renderUpcoming(w io.Writer, from time.Time) error {
	upcoming := p.manager.Next(from, 5)
	if len(upcoming) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Upcoming holidays"))
	for _, u := range upcoming {
		countdown := fmt.Sprintf("in %d days", u.DaysOut)
		switch u.DaysOut {
		case 0:
			countdown = "today"
		case 1:
			countdown = "tomorrow"
		}
		fmt.Fprintf(w, "  %s %s  %s (%s)\n",
			u.Date.Format("Mon"), u.Date.Format("Jan 02"), u.Name, countdown)
	}
	return nil
}
