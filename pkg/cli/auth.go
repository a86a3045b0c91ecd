package cli

import (
	"fmt"

	"github.com/harrisonrobin/tasktrack/pkg/auth"
	"github.com/harrisonrobin/tasktrack/pkg/log"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize read access to private Google Sheets",
		Long:  "Removes any cached token and runs the browser authorization flow again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenFile, err := auth.TokenPath()
			if err != nil {
				return fmt.Errorf("could not find path to configuration file: %w", err)
			}
			log.Infof("Removing existing token file at '%s'", tokenFile)
			if err := auth.RemoveToken(); err != nil {
				return err
			}
			if _, err := auth.GetSheetsService(cmd.Context()); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Authentication successful! Token saved to %s\n", tokenFile)
			return nil
		},
	}
}
