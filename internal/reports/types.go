// Package reports summarizes the task list for export.
package reports

import "time"

// UpcomingWindow is how far ahead an event counts as upcoming.
const UpcomingWindow = 7 * 24 * time.Hour

// Summary is a snapshot of the task list at GeneratedAt.
type Summary struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Counts      Counts      `json:"counts"`
	Overdue     []TaskEntry `json:"overdue"`
	Upcoming    []TaskEntry `json:"upcoming"`
	Tasks       []TaskEntry `json:"tasks"`
}

// Counts holds list totals.
type Counts struct {
	Total     int `json:"total"`
	Done      int `json:"done"`
	Pending   int `json:"pending"`
	Todos     int `json:"todos"`
	Deadlines int `json:"deadlines"`
	Events    int `json:"events"`
}

// TaskEntry is one task as exported. Index is its 1-based list position.
type TaskEntry struct {
	Index       int        `json:"index"`
	Kind        string     `json:"kind"`
	Done        bool       `json:"done"`
	Description string     `json:"description"`
	Display     string     `json:"display"`
	Due         *time.Time `json:"due,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
}
