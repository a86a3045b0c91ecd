package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrisonrobin/tasktrack/pkg/board"
	"github.com/harrisonrobin/tasktrack/pkg/dates"
	"github.com/harrisonrobin/tasktrack/pkg/model"
	"github.com/harrisonrobin/tasktrack/pkg/sheet"
)

var today, _ = dates.New(2024, 6, 10)

type fakeReader struct {
	table sheet.Table
	err   error
}

func (f fakeReader) ReadTable(ctx context.Context, id, rng string) (sheet.Table, error) {
	return f.table, f.err
}

type fakeLister struct {
	records []model.Record
	err     error
}

func (f fakeLister) ListRecords(ctx context.Context) ([]model.Record, error) {
	return f.records, f.err
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	csv := "Suivi projet,,\n" +
		"Tâche,Statut,Échéance\n" +
		"Audit,En cours,05/06/2024\n" +
		",Terminé,01/06/2024\n"
	if err := os.WriteFile(path, []byte(csv), 0600); err != nil {
		t.Fatal(err)
	}

	snap, err := File(path, Options{Today: today}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Source != "tasks.csv" || snap.HeaderIndex != 1 || snap.Dropped != 1 {
		t.Errorf("Unexpected snapshot %+v", snap)
	}
	if len(snap.Tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(snap.Tasks))
	}
	if got := snap.Tasks[0].TimeMetrics.Display; got != "Delayed (+5 days)" {
		t.Errorf("Expected Delayed (+5 days), got %q", got)
	}
}

func TestFileLoaderMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope.xlsx"), Options{}).Load(context.Background()); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestSpreadsheetLoaderKeepsBoardOnError(t *testing.T) {
	b := board.New()
	good := fakeReader{table: sheet.Table{
		{sheet.TextCell("Task"), sheet.TextCell("Status")},
		{sheet.TextCell("Audit"), sheet.TextCell("Done")},
	}}
	if _, err := b.Load(context.Background(), Spreadsheet(good, "abc", "", Options{Today: today})); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := b.Snapshot().Source; got != "sheets:abc" {
		t.Errorf("Expected source sheets:abc, got %q", got)
	}

	bad := fakeReader{err: errors.New("403")}
	if _, err := b.Load(context.Background(), Spreadsheet(bad, "abc", "A1:B9", Options{Today: today})); err == nil {
		t.Error("Expected error")
	}
	if tasks := b.Tasks(); len(tasks) != 1 || tasks[0].TimeMetrics.Display != "OK" {
		t.Errorf("Expected prior tasks to survive, got %+v", tasks)
	}
}

func TestRecordsLoader(t *testing.T) {
	l := fakeLister{records: []model.Record{
		{ID: "rec1", Fields: map[string]any{"Task Name": "Audit", "Deadline": "2024-06-10"}},
	}}
	snap, err := Records(l, "airtable", Options{Today: today}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.HeaderIndex != -1 || len(snap.Tasks) != 1 {
		t.Fatalf("Unexpected snapshot %+v", snap)
	}
	task := snap.Tasks[0]
	if task.ID != "rec1" || task.TimeMetrics.Display != "Deadline Now" || task.Status != "Pending" {
		t.Errorf("Unexpected task %+v", task)
	}
}

func TestRecordsFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	data := `{"records":[{"id":"rec9","fields":{"Task Name":"Report","Start Date":"2024-06-01"}}]}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	snap, err := RecordsFile(path, Options{Today: today}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].TimeMetrics.Display != "Running (9 days)" {
		t.Errorf("Unexpected snapshot %+v", snap)
	}
}
