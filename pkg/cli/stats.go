package cli

import (
	"strconv"

	"github.com/harrisonrobin/tasktrack/pkg/view"
	"github.com/spf13/cobra"
)

type statsOutput struct {
	Summary view.Summary     `json:"summary"`
	ByName  []view.NameStats `json:"byName"`
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count tasks by state, overall and per task name",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.load(cmd)
			if err != nil {
				return err
			}
			out := statsOutput{Summary: b.Summary(), ByName: b.ByName()}
			if out.ByName == nil {
				out.ByName = []view.NameStats{}
			}
			if app.Format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			s := out.Summary
			itoa := strconv.Itoa
			w := cmd.OutOrStdout()
			if err := renderRows(w,
				[]string{"Total", "Delayed", "Completed", "In progress", "Deadline now"},
				[][]string{{itoa(s.Total), itoa(s.Delayed), itoa(s.Completed), itoa(s.InProgress), itoa(s.DeadlineNow)}},
			); err != nil {
				return err
			}

			rows := make([][]string, len(out.ByName))
			for i, n := range out.ByName {
				rows[i] = []string{n.Name, itoa(n.Total), itoa(n.Delayed), itoa(n.Completed), itoa(n.InProgress), itoa(n.Reappeared), itoa(n.DeadlineNow)}
			}
			return renderRows(w, []string{"Task", "Total", "Delayed", "Completed", "In progress", "Reappeared", "Deadline now"}, rows)
		},
	}
	addSourceFlags(cmd, app)
	return cmd
}
