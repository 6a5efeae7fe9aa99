// Package command turns one line of user input into a task list operation
// and a reply. Mutating commands persist the whole list before replying; if
// that fails the list is put back the way it was.
package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"chattybuddy/internal/datetime"
	"chattybuddy/internal/task"
)

// Saver persists the full task list.
type Saver interface {
	Save(tasks []task.Task) error
}

type handler struct {
	mutates bool
	run     func(in *Interpreter, args string) (string, error)
}

var handlers = map[string]handler{
	"list":     {run: (*Interpreter).list},
	"find":     {run: (*Interpreter).find},
	"mark":     {mutates: true, run: (*Interpreter).mark},
	"unmark":   {mutates: true, run: (*Interpreter).unmark},
	"delete":   {mutates: true, run: (*Interpreter).remove},
	"todo":     {mutates: true, run: (*Interpreter).todo},
	"deadline": {mutates: true, run: (*Interpreter).deadline},
	"event":    {mutates: true, run: (*Interpreter).event},
}

// Keywords returns the recognized command words, sorted.
func Keywords() []string {
	out := make([]string, 0, len(handlers))
	for k := range handlers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Interpreter executes commands against a list. It keeps no state between
// calls besides the list itself and is not safe for concurrent use.
type Interpreter struct {
	tasks *task.List
	store Saver
	dates *datetime.Normalizer
}

// New returns an Interpreter. A nil dates uses datetime.Default.
func New(tasks *task.List, store Saver, dates *datetime.Normalizer) *Interpreter {
	if dates == nil {
		dates = datetime.Default
	}
	return &Interpreter{tasks: tasks, store: store, dates: dates}
}

// Split separates the command keyword from the rest of the input.
func Split(input string) (keyword, args string) {
	s := strings.TrimLeftFunc(input, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// Execute runs one command line and returns the reply text.
func (in *Interpreter) Execute(input string) (string, error) {
	keyword, args := Split(input)
	h, ok := handlers[keyword]
	if !ok {
		return "", &Error{
			Kind:    ErrUnknownCommand,
			Keyword: keyword,
			Msg:     fmt.Sprintf("Oops! I'm sorry, but I don't know what %q means.", keyword),
		}
	}
	if !h.mutates {
		return h.run(in, args)
	}

	before := in.tasks.Snapshot()
	reply, err := h.run(in, args)
	if err != nil {
		in.tasks.Replace(before)
		return "", err
	}
	if err := in.store.Save(in.tasks.Snapshot()); err != nil {
		in.tasks.Replace(before)
		return "", err
	}
	return reply, nil
}

func (in *Interpreter) list(string) (string, error) {
	if in.tasks.Len() == 0 {
		return "Your task list is empty. Add one with todo, deadline or event.", nil
	}
	return numbered("Here are the tasks in your list:", in.tasks.Snapshot()), nil
}

func (in *Interpreter) find(args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return "", &task.Error{Kind: task.ErrEmptyTask, Msg: "Oops! Please tell me a keyword to find."}
	}
	matches := in.tasks.Find(args)
	if len(matches) == 0 {
		return "Oops! No matching tasks found!", nil
	}
	return numbered("Here are the matching tasks in your list:", matches), nil
}

func (in *Interpreter) mark(args string) (string, error) {
	t, err := in.setDone("mark", args, true)
	if err != nil {
		return "", err
	}
	return "OK, I've marked this task as done:\n" + t.Line(), nil
}

func (in *Interpreter) unmark(args string) (string, error) {
	t, err := in.setDone("unmark", args, false)
	if err != nil {
		return "", err
	}
	return "OK, I've marked this task as not done yet:\n" + t.Line(), nil
}

func (in *Interpreter) setDone(keyword, args string, done bool) (task.Task, error) {
	idx, err := parseIndex(keyword, args)
	if err != nil {
		return task.Task{}, err
	}
	return in.tasks.SetDone(idx, done)
}

func (in *Interpreter) remove(args string) (string, error) {
	idx, err := parseIndex("delete", args)
	if err != nil {
		return "", err
	}
	t, err := in.tasks.RemoveAt(idx)
	if err != nil {
		return "", err
	}
	return "Noted. I've removed this task:\n" + t.Line() + "\n" + sizeLine(in.tasks.Len()), nil
}

func (in *Interpreter) todo(args string) (string, error) {
	return in.add(task.ParseTodo(args))
}

func (in *Interpreter) deadline(args string) (string, error) {
	return in.add(task.ParseDeadline(args, in.dates))
}

func (in *Interpreter) event(args string) (string, error) {
	return in.add(task.ParseEvent(args, in.dates))
}

func (in *Interpreter) add(t task.Task, err error) (string, error) {
	if err != nil {
		return "", err
	}
	n := in.tasks.Add(t)
	return "Got it. I've added this task:\n  " + t.Line() + "\n" + sizeLine(n), nil
}

func parseIndex(keyword, args string) (int, error) {
	s := strings.TrimSpace(args)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &Error{
			Kind:    ErrInvalidInput,
			Keyword: keyword,
			Msg:     fmt.Sprintf("Oops! %s needs a task number, e.g. %s 2", keyword, keyword),
		}
	}
	return n, nil
}

func numbered(header string, tasks []task.Task) string {
	var b strings.Builder
	b.WriteString(header)
	for i, t := range tasks {
		fmt.Fprintf(&b, "\n%d.%s", i+1, t.Line())
	}
	return b.String()
}

func sizeLine(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}
