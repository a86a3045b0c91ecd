// Package digestlog records which due-today digests were already produced,
// so a scheduled run reports each day at most once.
package digestlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/harrisonrobin/tasktrack/pkg/config"
	"github.com/harrisonrobin/tasktrack/pkg/dates"
	"github.com/harrisonrobin/tasktrack/pkg/view"
)

const (
	ledgerFile = "digests.json"

	// Retention is how long entries are kept.
	Retention = 30
)

type Entry struct {
	Subject  string    `json:"subject"`
	TaskIDs  []string  `json:"task_ids"`
	Produced time.Time `json:"produced"`
}

// Table maps a day (YYYY-MM-DD) to the digest produced for it.
type Table struct {
	Entries map[string]Entry `json:"entries"`
	Path    string           `json:"-"`
	dirty   bool
}

// NewTable opens the ledger in the config directory.
func NewTable() (*Table, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, ledgerFile))
}

// Open reads the ledger at path. A missing file is an empty ledger.
func Open(path string) (*Table, error) {
	t := &Table{
		Path:    path,
		Entries: make(map[string]Entry),
	}
	if _, err := os.Stat(path); err == nil {
		if err := t.Load(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) Load() error {
	f, err := os.Open(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(t); err != nil {
		return err
	}
	if t.Entries == nil {
		t.Entries = make(map[string]Entry)
	}
	return nil
}

func (t *Table) Save() error {
	if !t.dirty {
		return nil
	}
	dir := filepath.Dir(t.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(t)
	if err == nil {
		t.dirty = false
	}
	return err
}

func key(day dates.Date) string {
	return day.Time().Format("2006-01-02")
}

// Seen reports whether a digest was already recorded for day.
func (t *Table) Seen(day dates.Date) bool {
	_, ok := t.Entries[key(day)]
	return ok
}

// Record stores d as the digest of day.
func (t *Table) Record(day dates.Date, d view.Digest, produced time.Time) {
	ids := make([]string, len(d.Tasks))
	for i, task := range d.Tasks {
		ids[i] = task.ID
	}
	t.Entries[key(day)] = Entry{Subject: d.Subject, TaskIDs: ids, Produced: produced}
	t.dirty = true
}

// Prune removes entries older than Retention days before today and returns
// them.
func (t *Table) Prune(today dates.Date) []Entry {
	cutoff := key(today.AddDays(-Retention))
	var pruned []Entry
	for k, entry := range t.Entries {
		// YYYY-MM-DD keys order like the days they name.
		if k < cutoff {
			pruned = append(pruned, entry)
			delete(t.Entries, k)
			t.dirty = true
		}
	}
	return pruned
}
