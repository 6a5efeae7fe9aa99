// Package task defines the three task kinds (todo, deadline, event), their
// user-text and persisted forms, and the ordered List that owns them.
package task

import (
	"fmt"
	"strings"
	"time"

	"chattybuddy/internal/datetime"
)

// Kind identifies the variant of a task. The value doubles as the kind code
// in display and persisted lines.
type Kind string

const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// Detail is the kind-specific part of a task. Todo, Deadline and Event are
// its only implementations.
type Detail interface {
	Kind() Kind
	// suffix is appended to the description when displayed.
	suffix() string
	// fields are the persisted kind-specific fields.
	fields() []string
	equal(Detail) bool
}

// Todo is a plain to-do with no date.
type Todo struct{}

// Deadline must be done by a calendar date.
type Deadline struct {
	Due time.Time
}

// Event spans a start and end date-time. Start is not required to precede End.
type Event struct {
	Start time.Time
	End   time.Time
}

func (Todo) Kind() Kind       { return KindTodo }
func (Todo) suffix() string   { return "" }
func (Todo) fields() []string { return nil }
func (Todo) equal(o Detail) bool {
	_, ok := o.(Todo)
	return ok
}

func (d Deadline) Kind() Kind { return KindDeadline }
func (d Deadline) suffix() string {
	return fmt.Sprintf(" (by: %s)", datetime.FormatDate(d.Due))
}
func (d Deadline) fields() []string { return []string{datetime.FormatDate(d.Due)} }
func (d Deadline) equal(o Detail) bool {
	od, ok := o.(Deadline)
	return ok && od.Due.Equal(d.Due)
}

func (e Event) Kind() Kind { return KindEvent }
func (e Event) suffix() string {
	return fmt.Sprintf(" (from: %s to: %s)", datetime.DisplayDateTime(e.Start), datetime.DisplayDateTime(e.End))
}
func (e Event) fields() []string {
	return []string{datetime.FormatDateTime(e.Start), datetime.FormatDateTime(e.End)}
}
func (e Event) equal(o Detail) bool {
	oe, ok := o.(Event)
	return ok && oe.Start.Equal(e.Start) && oe.End.Equal(e.End)
}

// Task is a single entry in the list. The zero value is not usable; build
// tasks with NewTodo, NewDeadline, NewEvent or the Parse functions.
type Task struct {
	Description string
	Done        bool
	detail      Detail
}

// NewTodo returns a pending todo.
func NewTodo(description string) Task {
	return Task{Description: description, detail: Todo{}}
}

// NewDeadline returns a pending deadline due on the given date.
func NewDeadline(description string, due time.Time) Task {
	return Task{Description: description, detail: Deadline{Due: due}}
}

// NewEvent returns a pending event.
func NewEvent(description string, start, end time.Time) Task {
	return Task{Description: description, detail: Event{Start: start, End: end}}
}

// Kind returns the task's kind.
func (t Task) Kind() Kind { return t.Detail().Kind() }

// Detail returns the kind-specific data.
func (t Task) Detail() Detail {
	if t.detail == nil {
		return Todo{}
	}
	return t.detail
}

// StatusGlyph is "X" for done tasks and a space otherwise.
func (t Task) StatusGlyph() string {
	if t.Done {
		return "X"
	}
	return " "
}

// String renders the description with any date suffix, e.g.
// "submit report (by: 2019-10-15)".
func (t Task) String() string {
	return t.Description + t.Detail().suffix()
}

// Line renders the task as "[D][X] submit report (by: 2019-10-15)".
func (t Task) Line() string {
	return fmt.Sprintf("[%s][%s] %s", t.Kind(), t.StatusGlyph(), t)
}

// Equal reports whether two tasks hold the same fields.
func (t Task) Equal(o Task) bool {
	return t.Description == o.Description && t.Done == o.Done && t.Detail().equal(o.Detail())
}

// ParseTodo builds a todo from the text after the "todo" keyword.
func ParseTodo(text string) (Task, error) {
	desc := strings.TrimSpace(text)
	if desc == "" {
		return Task{}, emptyf("Oops! The description of a todo cannot be empty.")
	}
	return storable(NewTodo(desc))
}

// ParseDeadline builds a deadline from "<description> /by <date>".
func ParseDeadline(text string, dates *datetime.Normalizer) (Task, error) {
	idx := strings.Index(text, "/by")
	if idx < 0 {
		return Task{}, malformedf("Oops! A deadline needs a due date: deadline <description> /by <date>")
	}
	desc := strings.TrimSpace(text[:idx])
	due := strings.TrimSpace(text[idx+len("/by"):])
	if desc == "" {
		return Task{}, emptyf("Oops! The description of a deadline cannot be empty.")
	}
	if due == "" {
		return Task{}, malformedf("Oops! The due date after /by cannot be empty.")
	}
	d, err := dates.ParseDate(due)
	if err != nil {
		return Task{}, err
	}
	return storable(NewDeadline(desc, d))
}

// ParseEvent builds an event from "<description> /from <start> /to <end>".
func ParseEvent(text string, dates *datetime.Normalizer) (Task, error) {
	from := strings.Index(text, "/from")
	if from < 0 {
		return Task{}, malformedf("Oops! An event needs a start: event <description> /from <start> /to <end>")
	}
	// Only a /to after /from ends the start, so "/tokyo" in the description is text.
	to := strings.Index(text[from:], "/to")
	if to < 0 {
		return Task{}, malformedf("Oops! An event needs an end after /from: event <description> /from <start> /to <end>")
	}
	to += from

	desc := strings.TrimSpace(text[:from])
	startText := strings.TrimSpace(text[from+len("/from") : to])
	endText := strings.TrimSpace(text[to+len("/to"):])
	if desc == "" {
		return Task{}, emptyf("Oops! The description of an event cannot be empty.")
	}
	if startText == "" {
		return Task{}, malformedf("Oops! The start after /from cannot be empty.")
	}
	if endText == "" {
		return Task{}, malformedf("Oops! The end after /to cannot be empty.")
	}

	start, err := dates.ParseDateTime(startText)
	if err != nil {
		return Task{}, err
	}
	end, err := dates.ParseDateTime(endText)
	if err != nil {
		return Task{}, err
	}
	return storable(NewEvent(desc, start, end))
}

// storable rejects tasks whose persisted line would not decode back to the
// same line, such as a description containing Separator.
func storable(t Task) (Task, error) {
	line := t.PersistedLine(Separator)
	back, err := ParseLine(line, Separator)
	if err != nil || back.PersistedLine(Separator) != line {
		return Task{}, malformedf("Oops! A description cannot contain %q.", strings.TrimSpace(Separator))
	}
	return t, nil
}
