package cli

import (
	"strconv"

	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/spf13/cobra"
)

type columnsOutput struct {
	Source      string                  `json:"source"`
	HeaderIndex int                     `json:"headerIndex"`
	Columns     []string                `json:"columns"`
	Roles       map[lexicon.Role]string `json:"roles"`
	Names       []string                `json:"taskNames"`
}

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show the detected header row, columns and role mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.load(cmd)
			if err != nil {
				return err
			}
			snap := b.Snapshot()
			out := columnsOutput{
				Source:      snap.Source,
				HeaderIndex: snap.HeaderIndex,
				Columns:     snap.Columns,
				Roles:       snap.Roles,
				Names:       b.TaskNames(),
			}
			if app.Format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			header := "records"
			if snap.HeaderIndex >= 0 {
				header = "row " + strconv.Itoa(snap.HeaderIndex)
			}
			rows := [][]string{{"source", snap.Source}, {"header", header}}
			for _, role := range lexicon.Roles {
				label := snap.Roles[role]
				if label == "" {
					label = "-"
				}
				rows = append(rows, []string{string(role), label})
			}
			if err := renderRows(w, []string{"Role", "Column"}, rows); err != nil {
				return err
			}

			cols := make([][]string, len(snap.Columns))
			for i, c := range snap.Columns {
				cols[i] = []string{strconv.Itoa(i + 1), c}
			}
			return renderRows(w, []string{"#", "Label"}, cols)
		},
	}
	addSourceFlags(cmd, app)
	return cmd
}
