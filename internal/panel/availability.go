// ABOUTME: Member-availability overview panel with per-status counts, hours, and shares.
// ABOUTME: Renders bubbles table rows plus a totals row, status legend, and events strip.

package panel

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/2389/rota/internal/apiclient"
	"github.com/2389/rota/internal/schedule"
)

var titleCaser = cases.Title(language.English)

// AvailabilityPanel renders the member-availability overview for a window.
type AvailabilityPanel struct {
	client     apiclient.Client
	showEvents bool
}

// NewAvailabilityPanel constructs the panel over an API client. showEvents
// adds the events-per-day strip below the overview.
func NewAvailabilityPanel(client apiclient.Client, showEvents bool) *AvailabilityPanel {
	return &AvailabilityPanel{client: client, showEvents: showEvents}
}

// Columns returns the overview table columns.
func Columns() []table.Column {
	return []table.Column{
		{Title: "Member", Width: 16},
		{Title: "Good", Width: 6},
		{Title: "OK", Width: 6},
		{Title: "Bad", Width: 6},
		{Title: "Hours", Width: 8},
		{Title: "Good %", Width: 8},
	}
}

// Rows converts an overview into table rows, totals last.
func Rows(o schedule.Overview) []table.Row {
	rows := make([]table.Row, 0, 8)
	for _, stats := range o.Rows() {
		rows = append(rows, statsRow(stats, titleCaser.String(stats.Member)))
	}
	rows = append(rows, statsRow(o.Totals(), "Total"))
	return rows
}

func statsRow(stats schedule.MemberStats, label string) table.Row {
	return table.Row{
		label,
		fmt.Sprintf("%d", stats.Counts[schedule.StatusGood]),
		fmt.Sprintf("%d", stats.Counts[schedule.StatusOK]),
		fmt.Sprintf("%d", stats.Counts[schedule.StatusBad]),
		fmt.Sprintf("%.1f", stats.TotalHours()),
		fmt.Sprintf("%.0f%%", stats.Share(schedule.StatusGood)),
	}
}

// RenderPlain fetches the window's slots and writes the overview exactly once.
func (p *AvailabilityPanel) RenderPlain(ctx context.Context, w io.Writer, window schedule.Window) error {
	slots, err := p.client.GetAvailability(ctx, window.StartISO(), window.EndISO())
	if err != nil {
		return fmt.Errorf("failed to fetch availability: %w", err)
	}

	overview := schedule.BuildOverview(slots)

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Availability %s to %s",
		schedule.ISODate(window.Start), schedule.ISODate(window.End))))

	if len(slots) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  no availability recorded in this window"))
		return nil
	}

	rows := Rows(overview)
	t := table.New(
		table.WithColumns(Columns()),
		table.WithRows(rows),
		table.WithHeight(len(rows)),
	)
	fmt.Fprintln(w, t.View())

	legend := fmt.Sprintf("%s available  %s partial  %s unavailable",
		goodStyle.Render("good"), okStyle.Render("ok"), badStyle.Render("bad"))
	fmt.Fprintln(w, helpStyle.Render(legend))

	if p.showEvents {
		return p.renderEvents(ctx, w, window)
	}
	return nil
}

func (p *AvailabilityPanel) renderEvents(ctx context.Context, w io.Writer, window schedule.Window) error {
	events, err := p.client.GetEvents(ctx, window.StartISO(), window.EndISO())
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Events"))
	for _, bucket := range schedule.BucketByDay(events, window) {
		fmt.Fprintf(w, "  %s  %d event(s)\n", bucket.Date, len(bucket.Events))
		for _, evt := range bucket.Events {
			fmt.Fprintf(w, "    %s\n", evt.Summary)
		}
	}
	return nil
}
