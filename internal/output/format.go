// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskwave/internal/service"
)

const (
	// ListSeparator is the separator line around the list header.
	ListSeparator = "------------"

	// TimeLayout is how task times are shown.
	TimeLayout = "2006-01-02 15:04"
)

// FormatTask formats a task line.
// Format: "{ID:>4}  [x]  {TITLE}\n"; the box is empty for open tasks.
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  [%s]  %s\n", task.ID, mark(task), normalizeTitle(task.Title))
}

// FormatTaskDetails writes the indented long-form lines shown by `list --long`.
func FormatTaskDetails(w io.Writer, task service.Task) {
	const indent = "            "
	if d := normalizeText(task.Description); d != "" {
		fmt.Fprintf(w, "%s%s\n", indent, d)
	}
	fmt.Fprintf(w, "%screated %s", indent, FormatTime(task.CreatedAt))
	if task.ModifiedAt != nil && !task.ModifiedAt.IsZero() {
		fmt.Fprintf(w, ", modified %s", FormatTime(*task.ModifiedAt))
	}
	if owner := task.User.FullName(); owner != "" {
		fmt.Fprintf(w, ", by %s", owner)
	}
	fmt.Fprintln(w)
}

// FormatListHeader formats the list header: who is logged in and which
// filter and order are applied.
func FormatListHeader(w io.Writer, user, filter, order string) {
	if strings.TrimSpace(user) == "" {
		user = "Unknown User"
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s: %s, %s\n", user, filter, order)
	fmt.Fprintln(w, ListSeparator)
}

// FormatTime formats a server time as received, without converting zones.
// The zero time prints as "-".
func FormatTime(ts service.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format(TimeLayout)
}

func mark(task service.Task) string {
	if task.Completed {
		return "x"
	}
	return " "
}

// normalizeTitle normalizes a task title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText replaces newlines with spaces and trims the result.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
