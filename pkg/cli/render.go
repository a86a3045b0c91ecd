package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/harrisonrobin/tasktrack/pkg/metrics"
	"github.com/harrisonrobin/tasktrack/pkg/model"
)

const timeHeader = "Time"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	severityColors = map[metrics.Severity]lipgloss.TerminalColor{
		metrics.Urgent:  lipgloss.Color("#E5484D"),
		metrics.Warning: lipgloss.Color("#F76B15"),
		metrics.Info:    lipgloss.Color("#0090FF"),
	}
)

func severityStyle(s metrics.Severity) lipgloss.Style {
	st := cellStyle
	if c, ok := severityColors[s]; ok {
		st = st.Foreground(c)
	}
	return st
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

// renderTasks prints every column of the tasks followed by the time metric,
// colored by severity.
func renderTasks(w io.Writer, columns []string, tasks []model.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}

	headers := append(append([]string(nil), columns...), timeHeader)
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		row := make([]string, 0, len(headers))
		for _, label := range columns {
			c, _ := t.Columns.Get(label)
			row = append(row, c.String())
		}
		rows[i] = append(row, t.TimeMetrics.Display)
	}

	tbl := newTable(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == len(columns) && row >= 0 && row < len(tasks):
				return severityStyle(tasks[row].TimeMetrics.Severity)
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// renderRows prints a plain table.
func renderRows(w io.Writer, headers []string, rows [][]string) error {
	tbl := newTable(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
