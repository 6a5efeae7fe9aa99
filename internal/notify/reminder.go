package notify

import (
	"fmt"
	"strings"

	"chattybuddy/internal/reports"
)

// maxReminderLines caps the tasks listed in one reminder body.
const maxReminderLines = 5

// Reminder builds a notification for the overdue deadlines and upcoming
// events in s. It reports false when there is nothing to remind about.
func Reminder(s *reports.Summary) (Notification, bool) {
	if s == nil || len(s.Overdue)+len(s.Upcoming) == 0 {
		return Notification{}, false
	}

	var parts []string
	if n := len(s.Overdue); n > 0 {
		parts = append(parts, fmt.Sprintf("%d overdue", n))
	}
	if n := len(s.Upcoming); n > 0 {
		parts = append(parts, fmt.Sprintf("%d coming up", n))
	}

	var lines []string
	for _, e := range s.Overdue {
		lines = append(lines, "Overdue: "+e.Display)
	}
	for _, e := range s.Upcoming {
		lines = append(lines, "Soon: "+e.Display)
	}
	if len(lines) > maxReminderLines {
		rest := len(lines) - maxReminderLines
		lines = append(lines[:maxReminderLines], fmt.Sprintf("...and %d more", rest))
	}

	return Notification{
		Title:  "ChattyBuddy: " + strings.Join(parts, ", "),
		Body:   strings.Join(lines, "\n"),
		Urgent: len(s.Overdue) > 0,
	}, true
}
