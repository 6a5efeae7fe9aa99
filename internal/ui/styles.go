package ui

import (
	"chattybuddy/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all chat styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary    lipgloss.Color
	ColorAccent     lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorUserBubble lipgloss.Color
	ColorBotBubble  lipgloss.Color
	ColorError      lipgloss.Color
	ColorText       lipgloss.Color
	ColorTextMuted  lipgloss.Color

	// Component styles
	TitleStyle lipgloss.Style
	LogoStyle  lipgloss.Style

	UserBubbleStyle  lipgloss.Style
	BotBubbleStyle   lipgloss.Style
	ErrorBubbleStyle lipgloss.Style
	SpeakerStyle     lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
// If a theme color is empty, it uses the appropriate default.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")
	s.ColorUserBubble = colorOrDefault(theme.UserBubble, "#2563EB")
	s.ColorBotBubble = colorOrDefault(theme.BotBubble, "#374151")
	s.ColorError = colorOrDefault(theme.Error, "#EF4444")

	// Fixed text colors (not configurable from theme)
	s.ColorText = lipgloss.Color("#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.LogoStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	s.UserBubbleStyle = bubble.
		BorderForeground(s.ColorUserBubble).
		Foreground(s.ColorText)

	s.BotBubbleStyle = bubble.
		BorderForeground(s.ColorBotBubble).
		Foreground(s.ColorText)

	s.ErrorBubbleStyle = bubble.
		BorderForeground(s.ColorError).
		Foreground(s.ColorError)

	s.SpeakerStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}
