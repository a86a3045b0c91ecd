package cli

import (
	"github.com/harrisonrobin/tasktrack/pkg/model"
	"github.com/harrisonrobin/tasktrack/pkg/view"
	"github.com/spf13/cobra"
)

type listOutput struct {
	Source  string       `json:"source"`
	Columns []string     `json:"columns"`
	Tasks   []model.Task `json:"tasks"`
}

func newListCmd(app *App) *cobra.Command {
	var (
		category string
		taskName string
		search   string
		sortKey  string
		desc     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with their time metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := view.ParseCategory(category)
			if err != nil {
				return err
			}
			b, err := app.load(cmd)
			if err != nil {
				return err
			}

			direction := view.Asc
			if desc {
				direction = view.Desc
			}
			tasks := b.View(
				view.Filter{Category: cat, TaskName: taskName, Search: search},
				view.Sort{Key: sortKey, Direction: direction},
			)
			snap := b.Snapshot()

			if app.Format == formatJSON {
				if tasks == nil {
					tasks = []model.Task{}
				}
				return writeJSON(cmd.OutOrStdout(), listOutput{Source: snap.Source, Columns: snap.Columns, Tasks: tasks})
			}
			return renderTasks(cmd.OutOrStdout(), snap.Columns, tasks)
		},
	}

	addSourceFlags(cmd, app)
	cmd.Flags().StringVar(&category, "filter", string(view.All), "Category (all|delayed|completed|inProgress|reappeared|deadlineNow)")
	cmd.Flags().StringVar(&taskName, "task-name", view.AnyName, "Only tasks with exactly this name")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive text to find in name or assignee")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key: a column label, a field (name, assignee, status, startDate, deadline) or timeMetrics")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}
