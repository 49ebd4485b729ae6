package menu

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harrisonrobin/todo/pkg/model"
)

const (
	dueDateLayout = "2006-01-02"
	ruleWidth     = 80
)

// IsOverdue reports whether a pending task's due date lies before the day
// containing now. Due dates that don't parse are never overdue.
func IsOverdue(task model.Task, now time.Time) bool {
	if task.IsDone() || task.DueDate == "" {
		return false
	}
	due, err := time.ParseInLocation(dueDateLayout, task.DueDate, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

func statusLabel(task model.Task, now time.Time) string {
	if task.IsDone() {
		return "[Done]"
	}
	if IsOverdue(task, now) {
		return "![Pending]"
	}
	return "[Pending]"
}

// RenderTasks writes the task table.
func RenderTasks(w io.Writer, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "\nNo tasks found.")
		return
	}

	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintln(w, "\n--- To-Do List ---")
	fmt.Fprintf(w, "%-5s %-10s %-30s %-15s %s\n", "ID", "Status", "Description", "Due Date", "Tags")
	fmt.Fprintln(w, rule)
	for _, task := range tasks {
		fmt.Fprintf(w, "%-5d %-10s %-30s %-15s %s\n",
			task.ID,
			statusLabel(task, now),
			task.Description,
			task.DueDate,
			strings.Join(task.Tags, ", "),
		)
	}
	fmt.Fprintln(w, rule)
}
