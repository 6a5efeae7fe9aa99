package task

import (
	"fmt"
	"strings"
)

// List is an ordered collection of tasks. Positions are 1-based at the API
// and 0-based inside. A List is not safe for concurrent use.
type List struct {
	tasks []Task
}

// NewList returns a list holding a copy of tasks.
func NewList(tasks []Task) *List {
	l := &List{}
	l.Replace(tasks)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Add appends t and returns the new size.
func (l *List) Add(t Task) int {
	l.tasks = append(l.tasks, t)
	return len(l.tasks)
}

// RemoveAt deletes the task at the 1-based index and returns it.
func (l *List) RemoveAt(index int) (Task, error) {
	if err := l.checkIndex(index); err != nil {
		return Task{}, err
	}
	i := index - 1
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return removed, nil
}

// SetDone marks the task at the 1-based index and returns its new state.
func (l *List) SetDone(index int, done bool) (Task, error) {
	if err := l.checkIndex(index); err != nil {
		return Task{}, err
	}
	l.tasks[index-1].Done = done
	return l.tasks[index-1], nil
}

// Find returns, in list order, the tasks whose description contains sub.
// Matching is case-sensitive.
func (l *List) Find(sub string) []Task {
	var out []Task
	for _, t := range l.tasks {
		if strings.Contains(t.Description, sub) {
			out = append(out, t)
		}
	}
	return out
}

// Snapshot returns a copy of the tasks in order.
func (l *List) Snapshot() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Replace swaps the contents for a copy of tasks.
func (l *List) Replace(tasks []Task) {
	l.tasks = make([]Task, len(tasks))
	copy(l.tasks, tasks)
}

func (l *List) checkIndex(index int) error {
	if index < 1 || index > len(l.tasks) {
		msg := fmt.Sprintf("Oops! Task %d does not exist. You have %d tasks in the list.", index, len(l.tasks))
		if len(l.tasks) == 0 {
			msg = fmt.Sprintf("Oops! Task %d does not exist. Your list is empty.", index)
		}
		return &Error{Kind: ErrIndexOutOfRange, Msg: msg}
	}
	return nil
}
