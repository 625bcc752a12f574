// ABOUTME: Day-span windows and the month-grid arithmetic used by the panels.
// ABOUTME: MonthWindow pads a month to full Sunday-aligned weeks for grid layout.

package schedule

import "time"

// Window is an inclusive span of days. Start is midnight of the first day,
// End is midnight of the last day.
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow spans days whole days beginning at from's midnight. days < 1 is
// treated as a single day.
func DayWindow(from time.Time, days int) Window {
	if days < 1 {
		days = 1
	}
	start := midnight(from)
	return Window{Start: start, End: start.AddDate(0, 0, days-1)}
}

// MonthWindow spans the calendar grid for a month: padded backward to the
// Sunday on or before the 1st and forward to the Saturday on or after the
// last day, so Days() always yields whole weeks.
func MonthWindow(year int, month time.Month) Window {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	return Window{Start: start, End: end}
}

// Days lists every day in the window, oldest first.
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Weeks lays the window's days out in rows of seven. The final row may be
// short when the window is not week-aligned.
func (w Window) Weeks() [][]time.Time {
	days := w.Days()
	var weeks [][]time.Time
	for len(days) > 0 {
		n := 7
		if len(days) < n {
			n = len(days)
		}
		weeks = append(weeks, days[:n])
		days = days[n:]
	}
	return weeks
}

// Contains reports whether t falls on a day within the window.
func (w Window) Contains(t time.Time) bool {
	d := midnight(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// StartISO renders the window's opening instant as RFC3339.
func (w Window) StartISO() string {
	return w.Start.Format(time.RFC3339)
}

// EndISO renders the window's closing instant (end of the last day) as RFC3339.
func (w Window) EndISO() string {
	return w.End.AddDate(0, 0, 1).Add(-time.Second).Format(time.RFC3339)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ISODate renders a day key in YYYY-MM-DD form.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
