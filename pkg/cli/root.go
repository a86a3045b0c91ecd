// Package cli wires the tasktrack commands onto cobra.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/harrisonrobin/tasktrack/pkg/config"
	"github.com/harrisonrobin/tasktrack/pkg/dates"
	"github.com/harrisonrobin/tasktrack/pkg/google"
	"github.com/harrisonrobin/tasktrack/pkg/ingest"
	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/log"
	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type App struct {
	ConfigPath  string
	LogLevel    string
	LexiconPath string
	Today       string
	Format      string

	Source sourceFlags

	cfg   *config.Config
	lex   *lexicon.Lexicon
	today dates.Date

	now        func() time.Time
	httpClient *http.Client
	newSheets  func(ctx context.Context) (ingest.TableReader, error)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	if app.now == nil {
		app.now = time.Now
	}
	if app.newSheets == nil {
		app.newSheets = func(ctx context.Context) (ingest.TableReader, error) {
			return google.NewClient(ctx)
		}
	}

	cmd := &cobra.Command{
		Use:          "tasktrack",
		Short:        "Load team task sheets and report deadlines",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Tasks from a workbook, most overdue first
  tasktrack list --file team.xlsx --sort timeMetrics --desc

  # A sheet shared by link, only the delayed ones
  tasktrack list --sheet "https://docs.google.com/spreadsheets/d/<id>/edit" --filter delayed

  # Today's digest from Airtable, at most once per day
  tasktrack digest --airtable --once
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default ~/.config/tasktrack/config.json)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LexiconPath, "lexicon", "", "YAML file with extra header and status synonyms")
	cmd.PersistentFlags().StringVar(&app.Today, "today", "", "Reference day as YYYY-MM-DD (default: the current day)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", formatTable, "Output format (table|json)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newDigestCmd(app))
	cmd.AddCommand(newAuthCmd(app))

	return cmd
}

// init resolves config, logging, lexicon and the reference day. Flags win
// over the config file, which wins over defaults.
func (app *App) init() error {
	var err error
	if app.ConfigPath != "" {
		app.cfg, err = config.LoadFrom(app.ConfigPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	level := app.cfg.LogLevel
	if app.LogLevel != "" {
		level = app.LogLevel
	}
	log.InitFromEnvFallback(level)

	lexPath := app.cfg.LexiconFile
	if app.LexiconPath != "" {
		lexPath = app.LexiconPath
	}
	if app.lex, err = lexicon.Load(lexPath); err != nil {
		return err
	}

	switch app.Format {
	case formatTable, formatJSON:
	default:
		return fmt.Errorf("unknown format %q (use table or json)", app.Format)
	}

	if app.Today == "" {
		app.today = dates.Today(app.now())
		return nil
	}
	t, err := time.Parse("2006-01-02", app.Today)
	if err != nil {
		return fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", app.Today)
	}
	app.today = dates.Of(t)
	return nil
}

func (app *App) ingestOptions() ingest.Options {
	return ingest.Options{Lexicon: app.lex, Today: app.today}
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
