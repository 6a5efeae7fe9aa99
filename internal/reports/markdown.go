package reports

import (
	"fmt"
	"strings"
)

// FormatMarkdown renders a summary as a Markdown document.
func FormatMarkdown(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# ChattyBuddy tasks\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n\n", s.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Total | Done | Pending | Todos | Deadlines | Events |\n")
	b.WriteString("|------:|-----:|--------:|------:|----------:|-------:|\n")
	c := s.Counts
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d |\n\n", c.Total, c.Done, c.Pending, c.Todos, c.Deadlines, c.Events)

	writeSection(&b, "Overdue deadlines", s.Overdue, "Nothing overdue.")
	writeSection(&b, "Events in the next 7 days", s.Upcoming, "No upcoming events.")
	writeSection(&b, "All tasks", s.Tasks, "Your task list is empty.")

	return b.String()
}

func writeSection(b *strings.Builder, title string, entries []TaskEntry, empty string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(entries) == 0 {
		fmt.Fprintf(b, "%s\n\n", empty)
		return
	}
	for _, e := range entries {
		box := " "
		if e.Done {
			box = "x"
		}
		fmt.Fprintf(b, "- [%s] %d. %s\n", box, e.Index, mdEscape(e.Display))
	}
	b.WriteString("\n")
}

// mdEscape keeps task text from being read as Markdown emphasis or links.
func mdEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "`", "\\`")
	return r.Replace(s)
}
