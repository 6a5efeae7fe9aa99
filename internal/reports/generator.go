package reports

import (
	"time"

	"chattybuddy/internal/task"
)

// Generator builds summaries relative to a clock.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a generator. A nil now uses time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Generate summarizes tasks. A deadline is overdue when it is not done and
// its due date is before today. An event is upcoming when it is not done and
// starts between now and UpcomingWindow from now.
func (g *Generator) Generate(tasks []task.Task) *Summary {
	now := g.now()
	today := startOfDay(now)
	horizon := now.Add(UpcomingWindow)

	s := &Summary{
		GeneratedAt: now,
		Overdue:     []TaskEntry{},
		Upcoming:    []TaskEntry{},
		Tasks:       make([]TaskEntry, 0, len(tasks)),
	}

	for i, t := range tasks {
		e := entryFor(i+1, t)
		s.Tasks = append(s.Tasks, e)

		s.Counts.Total++
		if t.Done {
			s.Counts.Done++
		} else {
			s.Counts.Pending++
		}

		switch d := t.Detail().(type) {
		case task.Todo:
			s.Counts.Todos++
		case task.Deadline:
			s.Counts.Deadlines++
			if !t.Done && d.Due.Before(today) {
				s.Overdue = append(s.Overdue, e)
			}
		case task.Event:
			s.Counts.Events++
			if !t.Done && !d.Start.Before(now) && !d.Start.After(horizon) {
				s.Upcoming = append(s.Upcoming, e)
			}
		}
	}

	return s
}

func entryFor(index int, t task.Task) TaskEntry {
	e := TaskEntry{
		Index:       index,
		Kind:        string(t.Kind()),
		Done:        t.Done,
		Description: t.Description,
		Display:     t.Line(),
	}
	switch d := t.Detail().(type) {
	case task.Deadline:
		due := d.Due
		e.Due = &due
	case task.Event:
		start, end := d.Start, d.End
		e.Start = &start
		e.End = &end
	}
	return e
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
