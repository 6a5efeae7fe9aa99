package ui

import (
	"testing"

	"chattybuddy/internal/bot"
	"chattybuddy/internal/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// scriptedHandler answers from a fixed table and records every input.
type scriptedHandler struct {
	replies map[string]bot.Reply
	inputs  []string
}

func (s *scriptedHandler) Handle(raw string) bot.Reply {
	s.inputs = append(s.inputs, raw)
	if r, ok := s.replies[raw]; ok {
		return r
	}
	return bot.Reply{Text: "echo: " + raw}
}

// typeText feeds text to the model as one rune burst.
func typeText(a *App, text string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func pressEnter(a *App) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}
