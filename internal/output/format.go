// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todolist/internal/todo"
)

const (
	// NoTasks is printed when the store holds no tasks at all.
	NoTasks = "no tasks yet"

	// NoMatches is printed when tasks exist but the filter hides all of them.
	NoMatches = "no tasks match this filter"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned position, two spaces, checkbox, text)
func FormatTask(w io.Writer, num int, task todo.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(task), normalizeText(task.Text))
}

// FormatTaskLong formats a task line followed by its id and creation time.
// Format: "{N:>4}  [x] {TEXT}  (id:{ID}, {CREATED})\n"
func FormatTaskLong(w io.Writer, num int, task todo.Task) {
	fmt.Fprintf(w, "%4d  %s %s  (id:%d, %s)\n", num, checkbox(task), normalizeText(task.Text), task.ID, task.CreatedAt)
}

// FormatCounts formats the counts footer.
func FormatCounts(w io.Writer, c todo.Counts) {
	fmt.Fprintf(w, "Total: %d  Completed: %d\n", c.Total, c.Completed)
}

// FormatStats formats the stats command output.
func FormatStats(w io.Writer, c todo.Counts) {
	fmt.Fprintf(w, "total      %d\n", c.Total)
	fmt.Fprintf(w, "completed  %d\n", c.Completed)
	fmt.Fprintf(w, "pending    %d\n", c.Pending())
}

func checkbox(task todo.Task) string {
	if task.Completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText normalizes a task text for single-line display.
// Newlines are replaced with spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
