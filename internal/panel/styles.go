// ABOUTME: Shared lipgloss styles and terminal width detection for the panels.
// ABOUTME: Plain renderers fall back to a fixed width when not attached to a TTY.

package panel

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FEC260"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5B4FC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	todayStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399"))
	holidayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FEC260"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}
