package reports

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"chattybuddy/internal/task"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.Local)
}

func sampleTasks() []task.Task {
	done := task.NewDeadline("old report", day(2024, 3, 1, 0))
	done.Done = true
	return []task.Task{
		task.NewTodo("read book"),
		task.NewDeadline("tax return", day(2024, 3, 9, 0)),  // overdue
		task.NewDeadline("due today", day(2024, 3, 10, 0)), // not overdue
		done, // done, never overdue
		task.NewEvent("party", day(2024, 3, 12, 18), day(2024, 3, 12, 22)),   // upcoming
		task.NewEvent("conference", day(2024, 4, 1, 9), day(2024, 4, 2, 17)), // too far
		task.NewEvent("breakfast", day(2024, 3, 10, 8), day(2024, 3, 10, 9)), // already started
	}
}

func TestGenerate_Counts(t *testing.T) {
	s := NewGenerator(fixedNow).Generate(sampleTasks())

	want := Counts{Total: 7, Done: 1, Pending: 6, Todos: 1, Deadlines: 3, Events: 3}
	if s.Counts != want {
		t.Errorf("Counts = %+v, want %+v", s.Counts, want)
	}
	if !s.GeneratedAt.Equal(fixedNow()) {
		t.Errorf("GeneratedAt = %v", s.GeneratedAt)
	}
	if len(s.Tasks) != 7 || s.Tasks[0].Index != 1 || s.Tasks[6].Index != 7 {
		t.Errorf("Tasks = %+v", s.Tasks)
	}
}

func TestGenerate_OverdueAndUpcoming(t *testing.T) {
	s := NewGenerator(fixedNow).Generate(sampleTasks())

	if len(s.Overdue) != 1 || s.Overdue[0].Description != "tax return" {
		t.Errorf("Overdue = %+v", s.Overdue)
	}
	if len(s.Upcoming) != 1 || s.Upcoming[0].Description != "party" {
		t.Errorf("Upcoming = %+v", s.Upcoming)
	}
}

func TestGenerate_Empty(t *testing.T) {
	s := NewGenerator(fixedNow).Generate(nil)

	if s.Counts.Total != 0 || len(s.Tasks) != 0 || s.Overdue == nil || s.Upcoming == nil {
		t.Errorf("summary = %+v", s)
	}
	if !strings.Contains(FormatMarkdown(s), "Your task list is empty.") {
		t.Error("empty markdown missing empty-list line")
	}
}

func TestFormatJSON(t *testing.T) {
	s := NewGenerator(fixedNow).Generate(sampleTasks())

	data, err := FormatJSON(s)
	if err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var decoded struct {
		Counts Counts `json:"counts"`
		Tasks  []struct {
			Kind  string  `json:"kind"`
			Due   *string `json:"due"`
			Start *string `json:"start"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.Counts.Total != 7 {
		t.Errorf("counts.total = %d", decoded.Counts.Total)
	}
	if decoded.Tasks[0].Kind != "T" || decoded.Tasks[0].Due != nil {
		t.Errorf("todo entry = %+v", decoded.Tasks[0])
	}
	if decoded.Tasks[1].Due == nil || decoded.Tasks[4].Start == nil {
		t.Error("date fields missing")
	}
}

func TestFormatMarkdown(t *testing.T) {
	md := FormatMarkdown(NewGenerator(fixedNow).Generate(sampleTasks()))

	for _, want := range []string{
		"# ChattyBuddy tasks",
		"_Generated 2024-03-10 12:00_",
		"| 7 | 1 | 6 | 1 | 3 | 3 |",
		"## Overdue deadlines\n\n- [ ] 2. \\[D\\]\\[ \\] tax return (by: 2024-03-09)",
		"- [x] 4. \\[D\\]\\[X\\] old report (by: 2024-03-01)",
		"- [ ] 5. \\[E\\]\\[ \\] party (from: 2024-03-12 6PM to: 2024-03-12 10PM)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
