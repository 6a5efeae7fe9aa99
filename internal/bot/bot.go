// Package bot is the boundary between a chat shell and the task core. A
// shell hands it one raw line at a time and renders the Reply it gets back.
package bot

import (
	"errors"
	"log/slog"

	"chattybuddy/internal/command"
	"chattybuddy/internal/datetime"
	"chattybuddy/internal/logging"
	"chattybuddy/internal/storage"
	"chattybuddy/internal/task"
)

// ByeCommand ends the session. It is matched exactly, case included.
const ByeCommand = "bye"

const (
	Greeting = "Hello! I'm ChattyBuddy\nWhat can I do for you?"
	Farewell = "Bye. Hope to see you again soon!"

	saveFailedText = "Error: Unable to save tasks to file."
)

// Logo is shown above the greeting by shells that have room for it.
const Logo = `  ____ _           _   _         ____            _     _
 / ___| |__   __ _| |_| |_ _   _| __ ) _   _  __| | __| |_   _
| |   | '_ \ / _` + "`" + ` | __| __| | | |  _ \| | | |/ _` + "`" + ` |/ _` + "`" + ` | | | |
| |___| | | | (_| | |_| |_| |_| | |_) | |_| | (_| | (_| | |_| |
 \____|_| |_|\__,_|\__|\__|\__, |____/ \__,_|\__,_|\__,_|\__, |
                           |___/                         |___/`

// Reply is the answer to one input line. Terminate is set only for
// ByeCommand; the shell shows Text and then ends the session. Err holds
// the failure behind an error reply, with Text already user-facing.
type Reply struct {
	Text      string
	Terminate bool
	Err       error
}

// IsError reports whether the reply describes a failed command.
func (r Reply) IsError() bool { return r.Err != nil }

// Bot routes input to a command.Interpreter.
type Bot struct {
	interp *command.Interpreter
	log    *slog.Logger
}

// New returns a Bot over tasks that persists through store. A nil dates
// uses datetime.Default and a nil log discards.
func New(tasks *task.List, store command.Saver, dates *datetime.Normalizer, log *slog.Logger) *Bot {
	return &Bot{
		interp: command.New(tasks, store, dates),
		log:    logging.For(log, "bot"),
	}
}

// Handle processes one raw input line. It never panics on user input and
// never returns a Go error; failures come back as error replies.
func (b *Bot) Handle(raw string) Reply {
	if raw == ByeCommand {
		b.log.Debug("session ending")
		return Reply{Text: Farewell, Terminate: true}
	}

	keyword, args := command.Split(raw)
	b.log.Debug("command", "keyword", keyword, "args", logging.Truncate(args, 40))

	text, err := b.interp.Execute(raw)
	if err != nil {
		return b.failure(keyword, err)
	}
	return Reply{Text: text}
}

func (b *Bot) failure(keyword string, err error) Reply {
	if errors.Is(err, storage.ErrPersistence) {
		b.log.Error("persist failed, change rolled back", "keyword", keyword, "err", err)
		return Reply{Text: saveFailedText, Err: err}
	}
	b.log.Warn("command failed", "keyword", keyword, "kind", kindOf(err), "err", err)
	return Reply{Text: err.Error(), Err: err}
}

// kindOf names the error class for logs.
func kindOf(err error) string {
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, command.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, task.ErrEmptyTask):
		return "empty_task"
	case errors.Is(err, task.ErrMalformedTask):
		return "malformed_task"
	case errors.Is(err, task.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, datetime.ErrDateFormat):
		return "date_format"
	default:
		return "other"
	}
}
