package task

import (
	"strings"
	"time"

	"chattybuddy/internal/datetime"
)

// Separator joins the fields of a persisted line. Descriptions containing it
// cannot be decoded again.
const Separator = " | "

// Fields returns the persisted fields: kind code, done flag, description,
// then the kind-specific dates in canonical form.
func (t Task) Fields() []string {
	done := "0"
	if t.Done {
		done = "1"
	}
	return append([]string{string(t.Kind()), done, t.Description}, t.Detail().fields()...)
}

// PersistedLine joins Fields with sep.
func (t Task) PersistedLine(sep string) string {
	return strings.Join(t.Fields(), sep)
}

// FromFields rebuilds a task from the fields of a persisted line.
func FromFields(fields []string) (Task, error) {
	if len(fields) < 3 {
		return Task{}, badRecordf("expected at least 3 fields, got %d", len(fields))
	}

	var done bool
	switch fields[1] {
	case "1":
		done = true
	case "0":
	default:
		return Task{}, badRecordf("invalid done flag %q", fields[1])
	}

	desc := fields[2]
	if strings.TrimSpace(desc) == "" {
		return Task{}, badRecordf("empty description")
	}

	var t Task
	switch Kind(fields[0]) {
	case KindTodo:
		if err := wantFields(fields, 3); err != nil {
			return Task{}, err
		}
		t = NewTodo(desc)
	case KindDeadline:
		if err := wantFields(fields, 4); err != nil {
			return Task{}, err
		}
		due, err := parseCanonical(datetime.DateLayout, fields[3])
		if err != nil {
			return Task{}, err
		}
		t = NewDeadline(desc, due)
	case KindEvent:
		if err := wantFields(fields, 5); err != nil {
			return Task{}, err
		}
		start, err := parseCanonical(datetime.DateTimeLayout, fields[3])
		if err != nil {
			return Task{}, err
		}
		end, err := parseCanonical(datetime.DateTimeLayout, fields[4])
		if err != nil {
			return Task{}, err
		}
		t = NewEvent(desc, start, end)
	default:
		return Task{}, badRecordf("unknown kind code %q", fields[0])
	}

	t.Done = done
	return t, nil
}

// ParseLine splits a persisted line on sep and rebuilds the task.
func ParseLine(line, sep string) (Task, error) {
	return FromFields(strings.Split(line, sep))
}

func wantFields(fields []string, n int) error {
	if len(fields) != n {
		return badRecordf("kind %s expects %d fields, got %d", fields[0], n, len(fields))
	}
	return nil
}

func parseCanonical(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, time.Local)
	if err != nil {
		return time.Time{}, badRecordf("invalid date %q (want %s)", value, layout)
	}
	return t, nil
}
