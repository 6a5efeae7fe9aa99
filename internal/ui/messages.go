package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// farewellDoneMsg is sent once the farewell has been on screen long enough.
type farewellDoneMsg struct{}

// farewellCmd waits delay and then reports farewellDoneMsg. A zero delay
// reports immediately.
func farewellCmd(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return farewellDoneMsg{} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return farewellDoneMsg{}
	})
}
