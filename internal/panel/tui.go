// ABOUTME: Interactive Bubble Tea UI hosting the availability and holiday panels.
// ABOUTME: Supports refresh keybinding and follow-mode repaint on stream notices.

package panel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389/rota/internal/apiclient"
	"github.com/2389/rota/internal/holidays"
	"github.com/2389/rota/internal/schedule"
	"github.com/2389/rota/internal/stream"
)

type view int

const (
	viewAvailability view = iota
	viewHolidays
)

type slotsMsg struct {
	slots []schedule.Slot
	err   error
}

type noticeMsg stream.Notice

type streamClosedMsg struct{}

// Run starts the interactive UI. notices may be nil when follow mode is off.
func Run(ctx context.Context, client apiclient.Client, manager *holidays.Manager, window schedule.Window, notices <-chan stream.Notice) error {
	m := newModel(ctx, client, manager, window, notices)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

type model struct {
	ctx     context.Context
	client  apiclient.Client
	manager *holidays.Manager
	window  schedule.Window
	notices <-chan stream.Notice

	view      view
	table     table.Model
	statusMsg string
	width     int
}

func newModel(ctx context.Context, client apiclient.Client, manager *holidays.Manager, window schedule.Window, notices <-chan stream.Notice) model {
	t := table.New(
		table.WithColumns(Columns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return model{
		ctx:     ctx,
		client:  client,
		manager: manager,
		window:  window,
		notices: notices,
		table:   t,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.waitForNotice())
}

func (m model) fetch() tea.Cmd {
	return func() tea.Msg {
		slots, err := m.client.GetAvailability(m.ctx, m.window.StartISO(), m.window.EndISO())
		return slotsMsg{slots: slots, err: err}
	}
}

func (m model) waitForNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-m.notices
		if !ok {
			return streamClosedMsg{}
		}
		return noticeMsg(n)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.statusMsg = "refreshing..."
			return m, m.fetch()
		case "tab":
			if m.view == viewAvailability {
				m.view = viewHolidays
			} else {
				m.view = viewAvailability
			}
		}

	case slotsMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("fetch failed: %v", msg.err)
			break
		}
		m.table.SetRows(Rows(schedule.BuildOverview(msg.slots)))
		m.statusMsg = fmt.Sprintf("updated %s", time.Now().Format("15:04:05"))

	case noticeMsg:
		// A mutation landed server-side; repaint and keep listening.
		m.statusMsg = fmt.Sprintf("change: %s", msg.Type)
		return m, tea.Batch(m.fetch(), m.waitForNotice())

	case streamClosedMsg:
		m.statusMsg = "stream disconnected"
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	title := titleStyle.Render(fmt.Sprintf("rota %s to %s",
		schedule.ISODate(m.window.Start), schedule.ISODate(m.window.End)))

	var body string
	if m.view == viewHolidays {
		body = m.holidayView()
	} else {
		body = m.table.View()
	}

	help := helpStyle.Render("r refresh · tab switch view · q quit")
	status := ""
	if m.statusMsg != "" {
		status = dimStyle.Render(m.statusMsg)
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n", title, body, status, help)
}

func (m model) holidayView() string {
	var buf strings.Builder
	p := NewHolidayPanel(m.manager)
	start := m.window.Start
	if err := p.Render(&buf, start.Year(), start.Month()); err != nil {
		return dimStyle.Render(fmt.Sprintf("holiday panel failed: %v", err))
	}
	return buf.String()
}
