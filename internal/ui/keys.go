package ui

import (
	"strings"

	"chattybuddy/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// ChatKeyMap defines the keys of the chat window. Everything else goes to
// the input line.
type ChatKeyMap struct {
	Send       key.Binding
	Quit       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
}

// DefaultChatKeyMap returns the default chat key bindings.
func DefaultChatKeyMap() ChatKeyMap {
	return NewChatKeyMap(&config.KeysConfig{})
}

// NewChatKeyMap creates chat key bindings from config.
func NewChatKeyMap(cfg *config.KeysConfig) ChatKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	send := parseKeys(cfg.Send, "enter")
	quit := parseKeys(cfg.Quit, "ctrl+c", "esc")
	up := parseKeys(cfg.ScrollUp, "pgup", "up")
	down := parseKeys(cfg.ScrollDown, "pgdown", "down")
	help := parseKeys(cfg.Help, "f1")
	return ChatKeyMap{
		Send: key.NewBinding(
			key.WithKeys(send...),
			key.WithHelp(send[0], "send"),
		),
		Quit: key.NewBinding(
			key.WithKeys(quit...),
			key.WithHelp(quit[0], "quit"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys(up...),
			key.WithHelp(up[0], "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys(down...),
			key.WithHelp(down[0], "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys(help...),
			key.WithHelp(help[0], "commands"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k ChatKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.ScrollUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ChatKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Quit},
		{k.ScrollUp, k.ScrollDown, k.Help},
	}
}
