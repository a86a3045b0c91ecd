package cli

import (
	"fmt"

	"github.com/harrisonrobin/tasktrack/pkg/digestlog"
	"github.com/harrisonrobin/tasktrack/pkg/log"
	"github.com/harrisonrobin/tasktrack/pkg/view"
	"github.com/spf13/cobra"
)

type digestOutput struct {
	Due     bool     `json:"due"`
	Subject string   `json:"subject,omitempty"`
	Body    string   `json:"body,omitempty"`
	TaskIDs []string `json:"taskIds"`
}

func newDigestCmd(app *App) *cobra.Command {
	var (
		once       bool
		ledgerPath string
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Compose the notification for tasks due today",
		RunE: func(cmd *cobra.Command, args []string) error {
			var ledger *digestlog.Table
			if once {
				var err error
				if ledgerPath != "" {
					ledger, err = digestlog.Open(ledgerPath)
				} else {
					ledger, err = digestlog.NewTable()
				}
				if err != nil {
					return fmt.Errorf("failed to open digest ledger: %w", err)
				}
				if ledger.Seen(app.today) {
					log.Infof("Digest for %s already produced, skipping", app.today)
					return nil
				}
			}

			b, err := app.load(cmd)
			if err != nil {
				return err
			}
			d, due := b.DueToday()

			if due && ledger != nil {
				ledger.Record(app.today, d, app.now())
				ledger.Prune(app.today)
				if err := ledger.Save(); err != nil {
					log.Warnf("failed to save digest ledger: %v", err)
				}
			}
			return writeDigest(cmd, app, d, due)
		},
	}

	addSourceFlags(cmd, app)
	cmd.Flags().BoolVar(&once, "once", false, "Produce the digest at most once per day")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "Digest ledger file for --once (default ~/.config/tasktrack/digests.json)")
	return cmd
}

func writeDigest(cmd *cobra.Command, app *App, d view.Digest, due bool) error {
	w := cmd.OutOrStdout()
	if app.Format == formatJSON {
		out := digestOutput{Due: due, Subject: d.Subject, Body: d.Body, TaskIDs: []string{}}
		for _, t := range d.Tasks {
			out.TaskIDs = append(out.TaskIDs, t.ID)
		}
		return writeJSON(w, out)
	}
	if !due {
		_, err := fmt.Fprintln(w, "No tasks due today.")
		return err
	}
	_, err := fmt.Fprintf(w, "Subject: %s\n\n%s\n", d.Subject, d.Body)
	return err
}
