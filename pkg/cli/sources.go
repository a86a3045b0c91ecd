package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harrisonrobin/tasktrack/pkg/airtable"
	"github.com/harrisonrobin/tasktrack/pkg/board"
	"github.com/harrisonrobin/tasktrack/pkg/ingest"
	"github.com/spf13/cobra"
)

var errNoSource = errors.New("no task source: pass --file, --records, --sheet, --sheet-id or --airtable, or set one in the config file")

type sourceFlags struct {
	File     string
	Records  string
	Sheet    string
	SheetID  string
	Range    string
	Airtable bool
}

func addSourceFlags(cmd *cobra.Command, app *App) {
	f := &app.Source
	cmd.Flags().StringVar(&f.File, "file", "", "Spreadsheet file (.xlsx, .csv, .tsv)")
	cmd.Flags().StringVar(&f.Records, "records", "", "Saved JSON records ({\"records\": [...]} or an array)")
	cmd.Flags().StringVar(&f.Sheet, "sheet", "", "Google Sheet link shared with \"Anyone with the link\"")
	cmd.Flags().StringVar(&f.SheetID, "sheet-id", "", "Private Google Sheet ID, read with OAuth")
	cmd.Flags().StringVar(&f.Range, "range", "", "A1 range for --sheet-id (default: whole first sheet)")
	cmd.Flags().BoolVar(&f.Airtable, "airtable", false, "Read the Airtable table from the config file")
}

// loader picks the source named by the flags, falling back to the config
// file. More than one source flag is an error.
func (app *App) loader(ctx context.Context) (board.Loader, error) {
	f := app.Source
	var chosen []string
	for _, s := range []struct {
		flag string
		set  bool
	}{
		{"--file", f.File != ""},
		{"--records", f.Records != ""},
		{"--sheet", f.Sheet != ""},
		{"--sheet-id", f.SheetID != ""},
		{"--airtable", f.Airtable},
	} {
		if s.set {
			chosen = append(chosen, s.flag)
		}
	}
	if len(chosen) > 1 {
		return nil, fmt.Errorf("choose one source, got %s", strings.Join(chosen, ", "))
	}

	opts := app.ingestOptions()
	cfg := app.cfg
	switch {
	case f.File != "":
		return ingest.File(f.File, opts), nil
	case f.Records != "":
		return ingest.RecordsFile(f.Records, opts), nil
	case f.Sheet != "":
		return ingest.SheetURL(app.httpClient, f.Sheet, opts), nil
	case f.SheetID != "":
		return app.spreadsheet(ctx, f.SheetID, f.Range)
	case f.Airtable:
		return app.airtable(), nil
	case cfg.SheetURL != "":
		return ingest.SheetURL(app.httpClient, cfg.SheetURL, opts), nil
	case cfg.SpreadsheetID != "":
		return app.spreadsheet(ctx, cfg.SpreadsheetID, cfg.SheetRange)
	case cfg.Airtable.BaseID != "":
		return app.airtable(), nil
	}
	return nil, errNoSource
}

func (app *App) spreadsheet(ctx context.Context, id, readRange string) (board.Loader, error) {
	r, err := app.newSheets(ctx)
	if err != nil {
		return nil, err
	}
	return ingest.Spreadsheet(r, id, readRange, app.ingestOptions()), nil
}

func (app *App) airtable() board.Loader {
	at := app.cfg.Airtable
	client := airtable.NewClient(at.APIKey, at.BaseID, at.Table)
	if app.httpClient != nil {
		client.HTTP = app.httpClient
	}
	return ingest.Records(client, "airtable:"+at.BaseID+"/"+at.Table, app.ingestOptions())
}

// load fills a fresh board from the chosen source.
func (app *App) load(cmd *cobra.Command) (*board.Board, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	l, err := app.loader(ctx)
	if err != nil {
		return nil, err
	}
	b := board.New()
	if _, err := b.Load(ctx, l); err != nil {
		return nil, err
	}
	return b, nil
}
