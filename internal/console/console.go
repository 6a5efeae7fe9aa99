// Package console is the line-oriented front end: it reads commands from an
// input stream and prints framed replies.
package console

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"chattybuddy/internal/bot"
	"chattybuddy/internal/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const ruleWidth = 28

// Handler answers one line of input.
type Handler interface {
	Handle(raw string) bot.Reply
}

// Console runs a chat session over a reader and writer.
type Console struct {
	in      io.Reader
	out     io.Writer
	handler Handler
	log     *slog.Logger
	welcome bool

	rule     string
	errStyle lipgloss.Style
}

// Options configures a Console.
type Options struct {
	// Color enables ANSI styling of errors and the rule.
	Color bool
	// ShowWelcome prints the logo and greeting before the first prompt.
	ShowWelcome bool
	Logger      *slog.Logger
}

// New returns a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer, h Handler, opts Options) *Console {
	r := lipgloss.NewRenderer(out)
	if !opts.Color {
		r.SetColorProfile(termenv.Ascii)
	}
	c := &Console{
		in:       in,
		out:      out,
		handler:  h,
		log:      logging.For(opts.Logger, "console"),
		welcome:  opts.ShowWelcome,
		errStyle: r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
	c.rule = r.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render(strings.Repeat("-", ruleWidth))
	return c
}

// Run prints the welcome (if enabled) and serves commands until bye or end
// of input. Blank lines are skipped.
func (c *Console) Run() error {
	if c.welcome {
		fmt.Fprintln(c.out, bot.Logo)
		c.frame(bot.Greeting)
	}

	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		raw := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		reply := c.handler.Handle(raw)
		text := reply.Text
		if reply.IsError() {
			text = c.errStyle.Render("error: " + text)
		}
		c.frame(text)
		if reply.Terminate {
			c.log.Debug("session ended by bye")
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	c.log.Debug("input closed")
	return nil
}

func (c *Console) frame(text string) {
	fmt.Fprintln(c.out, c.rule)
	fmt.Fprintln(c.out, text)
	fmt.Fprintln(c.out, c.rule)
}

// IsTerminal reports whether w is a terminal that should get color.
func IsTerminal(w io.Writer) bool {
	return termenv.NewOutput(w).ColorProfile() != termenv.Ascii
}
