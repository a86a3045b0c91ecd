// Package ingest connects the sources to the assembly pipeline. Each loader
// fetches one source and returns a board snapshot.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/tasktrack/pkg/airtable"
	"github.com/harrisonrobin/tasktrack/pkg/assemble"
	"github.com/harrisonrobin/tasktrack/pkg/board"
	"github.com/harrisonrobin/tasktrack/pkg/dates"
	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/log"
	"github.com/harrisonrobin/tasktrack/pkg/model"
	"github.com/harrisonrobin/tasktrack/pkg/sheet"
	"github.com/harrisonrobin/tasktrack/pkg/source"
)

// Options applies to every loader.
type Options struct {
	Lexicon *lexicon.Lexicon
	Today   dates.Date
}

// TableReader reads a range of a private spreadsheet.
type TableReader interface {
	ReadTable(ctx context.Context, spreadsheetID, readRange string) (sheet.Table, error)
}

// RecordLister lists the records of a tabular API.
type RecordLister interface {
	ListRecords(ctx context.Context) ([]model.Record, error)
}

// FromTable assembles a raw table into a snapshot.
func FromTable(src string, t sheet.Table, opts Options) board.Snapshot {
	res := assemble.New(assemble.Options{Lexicon: opts.Lexicon, Today: opts.Today, Source: src}).FromTable(t)

	if len(t) > 0 && !res.Header.Found {
		log.Warnf("%s: no header row with a task name and a status in the first %d rows, using row 0", src, sheet.HeaderScanRows)
	}
	roles := make(map[lexicon.Role]string, len(lexicon.Roles))
	for _, role := range lexicon.Roles {
		idx := res.Mapping.Roles.Get(role)
		if idx == sheet.Unresolved {
			log.Debugf("%s: no column for %s", src, role)
		}
		roles[role] = res.Header.Cells.At(idx).String()
	}
	if res.Dropped > 0 {
		log.Debugf("%s: dropped %d rows without a task name", src, res.Dropped)
	}
	log.Infof("%s: loaded %d tasks (header row %d)", src, len(res.Tasks), res.Header.Index)

	return board.Snapshot{
		Source:      src,
		Columns:     res.Columns(),
		Tasks:       res.Tasks,
		HeaderIndex: res.Header.Index,
		Roles:       roles,
		Dropped:     res.Dropped,
	}
}

var recordRoles = map[lexicon.Role]string{
	lexicon.RoleName:     assemble.FieldTaskName,
	lexicon.RoleAssignee: assemble.FieldAssignee,
	lexicon.RoleStatus:   assemble.FieldStatus,
	lexicon.RoleStart:    assemble.FieldStartDate,
	lexicon.RoleDeadline: assemble.FieldDeadline,
}

// FromRecords assembles keyed records into a snapshot.
func FromRecords(src string, records []model.Record, opts Options) board.Snapshot {
	res := assemble.New(assemble.Options{Lexicon: opts.Lexicon, Today: opts.Today, Source: src}).FromRecords(records)
	log.Infof("%s: loaded %d records", src, len(res.Tasks))
	return board.Snapshot{
		Source:      src,
		Columns:     res.Columns,
		Tasks:       res.Tasks,
		HeaderIndex: -1,
		Roles:       recordRoles,
	}
}

// File loads a spreadsheet or CSV file from disk.
func File(path string, opts Options) board.Loader {
	return board.LoaderFunc(func(ctx context.Context) (board.Snapshot, error) {
		t, err := source.ReadFile(path)
		if err != nil {
			log.Errorf("failed to read %s: %v", path, err)
			return board.Snapshot{}, err
		}
		return FromTable(filepath.Base(path), t, opts), nil
	})
}

// SheetURL loads a Google Sheet shared by link.
func SheetURL(client *http.Client, rawURL string, opts Options) board.Loader {
	return board.LoaderFunc(func(ctx context.Context) (board.Snapshot, error) {
		t, err := source.FetchSheet(ctx, client, rawURL)
		if err != nil {
			log.Errorf("failed to fetch %s: %v", rawURL, err)
			return board.Snapshot{}, err
		}
		return FromTable(rawURL, t, opts), nil
	})
}

// Spreadsheet loads a private Google Sheet through the API.
func Spreadsheet(r TableReader, spreadsheetID, readRange string, opts Options) board.Loader {
	return board.LoaderFunc(func(ctx context.Context) (board.Snapshot, error) {
		t, err := r.ReadTable(ctx, spreadsheetID, readRange)
		if err != nil {
			log.Errorf("failed to read spreadsheet %s: %v", spreadsheetID, err)
			return board.Snapshot{}, err
		}
		src := "sheets:" + spreadsheetID
		if readRange != "" {
			src += "!" + readRange
		}
		return FromTable(src, t, opts), nil
	})
}

// Records loads every record of a tabular API.
func Records(l RecordLister, name string, opts Options) board.Loader {
	return board.LoaderFunc(func(ctx context.Context) (board.Snapshot, error) {
		records, err := l.ListRecords(ctx)
		if err != nil {
			log.Errorf("failed to list %s records: %v", name, err)
			return board.Snapshot{}, err
		}
		return FromRecords(name, records, opts), nil
	})
}

// RecordsFile loads records saved as JSON.
func RecordsFile(path string, opts Options) board.Loader {
	return board.LoaderFunc(func(ctx context.Context) (board.Snapshot, error) {
		f, err := os.Open(path)
		if err != nil {
			return board.Snapshot{}, fmt.Errorf("failed to open records file: %w", err)
		}
		defer f.Close()

		records, err := airtable.ParseRecords(f)
		if err != nil {
			log.Errorf("failed to parse %s: %v", path, err)
			return board.Snapshot{}, err
		}
		return FromRecords(filepath.Base(path), records, opts), nil
	})
}
