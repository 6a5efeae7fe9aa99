// Package ui is the chat-bubble terminal front end. It owns the Bubble Tea
// event loop and hands each submitted line to a Handler synchronously from
// Update, so the task core only ever runs on one goroutine.
package ui

import (
	"log/slog"
	"strings"
	"time"

	"chattybuddy/internal/bot"
	"chattybuddy/internal/config"
	"chattybuddy/internal/logging"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// chromeHeight is the title, input and help lines around the transcript.
	chromeHeight = 4

	scrollStep = 3
)

// Handler answers one line of chat input.
type Handler interface {
	Handle(raw string) bot.Reply
}

// AppConfig holds user configuration for the chat window.
type AppConfig struct {
	Keys          *config.KeysConfig
	FarewellDelay time.Duration
	ShowWelcome   bool
	Logger        *slog.Logger
}

// AppConfigFrom builds an AppConfig from the loaded configuration.
func AppConfigFrom(cfg *config.Config, log *slog.Logger) *AppConfig {
	return &AppConfig{
		Keys:          &cfg.Keys,
		FarewellDelay: time.Duration(cfg.UX.FarewellDelayMS) * time.Millisecond,
		ShowWelcome:   cfg.UX.ShowWelcome,
		Logger:        log,
	}
}

type speaker int

const (
	speakerBot speaker = iota
	speakerUser
	speakerLogo
)

// entry is one bubble in the transcript.
type entry struct {
	from  speaker
	text  string
	isErr bool
}

// App is the chat window model.
type App struct {
	handler     Handler
	styles      *Styles
	config      *AppConfig
	log         *slog.Logger
	keys        ChatKeyMap
	input       textinput.Model
	transcript  viewport.Model
	helpOverlay *HelpOverlay
	entries     []entry
	showHelp    bool
	farewell    bool // bye was accepted; input is closed
	quitting    bool
	width       int
	height      int
}

// NewApp creates the chat window. A nil cfg shows the welcome and uses the
// default keys with no farewell delay.
func NewApp(h Handler, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{ShowWelcome: true}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if styles == nil {
		styles = NewStylesFromTheme(&config.ThemeConfig{})
	}

	ti := textinput.New()
	ti.Placeholder = "Type a command, e.g. todo read book"
	ti.Prompt = "> "
	ti.PromptStyle = styles.InputPromptStyle
	ti.TextStyle = styles.InputTextStyle
	ti.CharLimit = 512
	ti.Focus()

	keys := NewChatKeyMap(cfg.Keys)
	a := &App{
		handler:     h,
		styles:      styles,
		config:      cfg,
		log:         logging.For(cfg.Logger, "ui"),
		keys:        keys,
		input:       ti,
		transcript:  viewport.New(defaultWidth, defaultHeight-chromeHeight),
		helpOverlay: NewHelpOverlay(styles, keys),
	}
	a.setSize(defaultWidth, defaultHeight)

	if cfg.ShowWelcome {
		a.entries = append(a.entries,
			entry{from: speakerLogo, text: bot.Logo},
			entry{from: speakerBot, text: bot.Greeting},
		)
	}
	a.refresh()
	return a
}

// Init starts the cursor blinking.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		a.refresh()
		return a, nil

	case farewellDoneMsg:
		a.quitting = true
		a.log.Debug("farewell shown, quitting")
		return a, tea.Quit

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.transcript, cmd = a.transcript.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		if key.Matches(msg, a.keys.Help) || msg.String() == "esc" {
			a.showHelp = false
			return a, nil
		}
		if msg.String() != "ctrl+c" {
			return a, nil
		}
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		a.log.Info("quit without bye")
		return a, tea.Quit

	case key.Matches(msg, a.keys.ScrollUp):
		a.transcript.LineUp(scrollStep)
		return a, nil

	case key.Matches(msg, a.keys.ScrollDown):
		a.transcript.LineDown(scrollStep)
		return a, nil
	}

	// Once bye is accepted nothing else reaches the bot.
	if a.farewell {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.Send):
		return a, a.submit()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the input line to the handler and appends both bubbles.
func (a *App) submit() tea.Cmd {
	raw := a.input.Value()
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	a.input.Reset()

	a.entries = append(a.entries, entry{from: speakerUser, text: raw})
	reply := a.handler.Handle(raw)
	a.entries = append(a.entries, entry{from: speakerBot, text: reply.Text, isErr: reply.IsError()})
	a.refresh()

	if reply.Terminate {
		a.farewell = true
		a.input.Blur()
		return farewellCmd(a.config.FarewellDelay)
	}
	return nil
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.transcript.Width = width
	a.transcript.Height = max(1, height-chromeHeight)
	a.input.Width = max(10, width-4)
	a.helpOverlay.SetSize(width, height)
}

// refresh re-renders the transcript and keeps the newest bubble in view.
func (a *App) refresh() {
	a.transcript.SetContent(a.renderTranscript())
	a.transcript.GotoBottom()
}

func (a *App) renderTranscript() string {
	parts := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		if r := a.renderEntry(e); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, "\n")
}

func (a *App) renderEntry(e entry) string {
	switch e.from {
	case speakerLogo:
		if widestLine(e.text) > a.width {
			return ""
		}
		return a.styles.LogoStyle.Render(e.text)

	case speakerUser:
		b := a.bubble(a.styles.UserBubbleStyle, e.text)
		return lipgloss.PlaceHorizontal(a.width, lipgloss.Right, b)

	default:
		style := a.styles.BotBubbleStyle
		if e.isErr {
			style = a.styles.ErrorBubbleStyle
		}
		return a.bubble(style, e.text)
	}
}

// bubble wraps text in style, no wider than two thirds of the window.
func (a *App) bubble(style lipgloss.Style, text string) string {
	frame := style.GetHorizontalFrameSize()
	limit := max(8, a.width*2/3-frame)
	w := min(widestLine(text), limit)
	return style.Width(w + style.GetHorizontalPadding()).Render(text)
}

// widestLine returns the display width of the longest line of s.
func widestLine(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}

// View renders the chat window.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder
	b.WriteString(a.styles.TitleStyle.Render("ChattyBuddy"))
	b.WriteString("\n")
	b.WriteString(a.transcript.View())
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.renderHelpBar())
	return b.String()
}

func (a *App) renderHelpBar() string {
	if a.farewell {
		return a.styles.HelpStyle.Render("Goodbye...")
	}
	var pairs []string
	for _, k := range a.keys.ShortHelp() {
		h := k.Help()
		pairs = append(pairs, h.Key, h.Desc)
	}
	return a.styles.RenderHelp(pairs...)
}

// Run starts the Bubble Tea program with the given handler, styles, and config.
func Run(h Handler, styles *Styles, cfg *AppConfig) error {
	app := NewApp(h, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
