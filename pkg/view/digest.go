package view

import (
	"fmt"
	"strings"

	"github.com/harrisonrobin/tasktrack/pkg/model"
)

// Digest is a short notification about tasks due today.
type Digest struct {
	Subject string       `json:"subject"`
	Body    string       `json:"body"`
	Tasks   []model.Task `json:"-"`
}

// DueToday builds the digest for tasks whose deadline is today. ok is false
// when there is nothing to report.
func DueToday(tasks []model.Task) (d Digest, ok bool) {
	for _, t := range tasks {
		if isDeadlineNow(t) {
			d.Tasks = append(d.Tasks, t)
		}
	}
	if len(d.Tasks) == 0 {
		return Digest{}, false
	}

	d.Subject = fmt.Sprintf("Urgent: %d Tasks Due Today", len(d.Tasks))

	var b strings.Builder
	b.WriteString("Hello,\n\nThe following tasks are due today:\n\n")
	for _, t := range d.Tasks {
		assignee := t.Assignee
		if assignee == "" {
			assignee = "Unassigned"
		}
		fmt.Fprintf(&b, "- %s (Assignee: %s)\n", t.Name, assignee)
	}
	b.WriteString("\nPlease check them immediately.\n\nBest regards,")
	d.Body = b.String()
	return d, true
}
