package ui

import (
	"strings"
	"testing"

	"chattybuddy/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStyles_UsesThemeColors(t *testing.T) {
	theme := &config.ThemeConfig{
		Primary:    "#FF0000",
		Accent:     "#00FF00",
		Muted:      "#0000FF",
		UserBubble: "#111111",
		BotBubble:  "#222222",
		Error:      "#333333",
	}

	styles := NewStylesFromTheme(theme)

	checks := []struct {
		name string
		got  lipgloss.Color
		want string
	}{
		{"ColorPrimary", styles.ColorPrimary, "#FF0000"},
		{"ColorAccent", styles.ColorAccent, "#00FF00"},
		{"ColorMuted", styles.ColorMuted, "#0000FF"},
		{"ColorUserBubble", styles.ColorUserBubble, "#111111"},
		{"ColorBotBubble", styles.ColorBotBubble, "#222222"},
		{"ColorError", styles.ColorError, "#333333"},
	}
	for _, c := range checks {
		if c.got != lipgloss.Color(c.want) {
			t.Errorf("%s = %v, want %s", c.name, c.got, c.want)
		}
	}
}

func TestNewStyles_UsesDefaults(t *testing.T) {
	styles := NewStylesFromTheme(&config.ThemeConfig{})

	if styles.ColorPrimary != lipgloss.Color("#7C3AED") {
		t.Errorf("ColorPrimary = %v, want default #7C3AED", styles.ColorPrimary)
	}
	if styles.ColorError != lipgloss.Color("#EF4444") {
		t.Errorf("ColorError = %v, want default #EF4444", styles.ColorError)
	}
}

func TestNewStyles_ComponentStylesInitialized(t *testing.T) {
	styles := NewStylesFromTheme(&config.ThemeConfig{
		Primary:    "#FF0000",
		UserBubble: "#00FF00",
		Error:      "#0000FF",
	})

	if styles.TitleStyle.GetBackground() != lipgloss.Color("#FF0000") {
		t.Error("TitleStyle should use Primary color for background")
	}
	if styles.UserBubbleStyle.GetBorderTopForeground() != lipgloss.Color("#00FF00") {
		t.Error("UserBubbleStyle should use UserBubble color for border")
	}
	if styles.ErrorBubbleStyle.GetForeground() != lipgloss.Color("#0000FF") {
		t.Error("ErrorBubbleStyle should use Error color for text")
	}
}

func TestNewStyles_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Primary = "#123456"

	styles := NewStyles(cfg)

	if styles.ColorPrimary != lipgloss.Color("#123456") {
		t.Errorf("ColorPrimary = %v, want #123456", styles.ColorPrimary)
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	styles := createTestStyles()

	output := styles.RenderHelp(
		"enter", "send",
		"f1", "commands",
	)

	for _, want := range []string{"[enter] send", "[f1] commands"} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderHelp() = %q, want it to contain %q", output, want)
		}
	}
}

func TestParseKeys(t *testing.T) {
	tests := []struct {
		custom string
		want   string
	}{
		{"", "enter"},
		{"ctrl+s", "ctrl+s"},
		{" ctrl+s , alt+enter ", "ctrl+s|alt+enter"},
		{" , ", "enter"},
	}
	for _, tt := range tests {
		if got := strings.Join(parseKeys(tt.custom, "enter"), "|"); got != tt.want {
			t.Errorf("parseKeys(%q) = %q, want %q", tt.custom, got, tt.want)
		}
	}
}

func TestNewChatKeyMap_HelpText(t *testing.T) {
	keys := NewChatKeyMap(&config.KeysConfig{Quit: "ctrl+q"})

	if got := keys.Quit.Help().Key; got != "ctrl+q" {
		t.Errorf("Quit help key = %q, want ctrl+q", got)
	}
	if got := keys.Send.Help().Key; got != "enter" {
		t.Errorf("Send help key = %q, want enter", got)
	}
	if len(keys.FullHelp()) != 2 {
		t.Errorf("FullHelp() groups = %d", len(keys.FullHelp()))
	}
}
