// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"tado/internal/service"
)

const dateLayout = "2006-01-02"

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }]  {TITLE}  ({YYYY-MM-DD})"
func FormatTask(w io.Writer, num int, task service.Task) {
	title := normalizeTitle(task.Title)
	fmt.Fprintf(w, "%4d  [%s]  %s%s\n", num, mark(task.Completed), title, dateSuffix(task.CreatedAt))
}

// FormatTaskLong formats a task line followed by its description and, when
// the task has been updated, the update date.
func FormatTaskLong(w io.Writer, num int, task service.Task) {
	FormatTask(w, num, task)
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintf(w, "           %s\n", normalizeTitle(desc))
	}
	if !task.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "           updated %s\n", task.UpdatedAt.Format(dateLayout))
	}
}

// FormatSummary prints the completed/total footer.
func FormatSummary(w io.Writer, completed, total int) {
	fmt.Fprintf(w, "%d/%d completed\n", completed, total)
}

func mark(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}

func dateSuffix(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("  (%s)", t.Format(dateLayout))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
