package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// commandHelp lists the chat commands in the order they are shown.
var commandHelp = [][2]string{
	{"todo <desc>", "Add a to-do"},
	{"deadline <desc> /by <date>", "Add a deadline"},
	{"event <desc> /from <start> /to <end>", "Add an event"},
	{"list", "Show all tasks"},
	{"find <word>", "Show tasks containing word"},
	{"mark <n>", "Mark task n done"},
	{"unmark <n>", "Mark task n not done"},
	{"delete <n>", "Remove task n"},
	{"bye", "Say goodbye and exit"},
}

// HelpOverlay renders the command cheat sheet.
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
	keys   ChatKeyMap
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(styles *Styles, keys ChatKeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
		keys:   keys,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 64
	if h.width > 0 {
		overlayWidth = min(64, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent)

	cmdStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("ChattyBuddy commands"))
	b.WriteString("\n\n")

	for _, c := range commandHelp {
		b.WriteString(cmdStyle.Render(c[0]) + "\n")
		b.WriteString("  " + descStyle.Render(c[1]) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Dates"))
	b.WriteString("\n")
	b.WriteString(descStyle.Render("2019-10-15, 15 Oct 2019, 15/10/2019, 10/15/19, 15 Oct") + "\n")
	b.WriteString(descStyle.Render("Times: 2019-10-15 1800 or 2019-10-15 6PM") + "\n")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press " + h.keys.Help.Help().Key + " or esc to close"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
