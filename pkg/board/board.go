// Package board owns the loaded task collection. A load replaces the whole
// collection or nothing; readers always see one consistent snapshot.
package board

import (
	"context"
	"sync"
	"time"

	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/model"
	"github.com/harrisonrobin/tasktrack/pkg/view"
)

// Snapshot is the result of one successful load.
type Snapshot struct {
	Source  string       `json:"source"`
	Columns []string     `json:"columns"`
	Tasks   []model.Task `json:"tasks"`
	// HeaderIndex is the located header row, or -1 for keyed records.
	HeaderIndex int `json:"headerIndex"`
	// Roles names the column claimed by each role; "" when unresolved.
	Roles map[lexicon.Role]string `json:"roles"`
	// Dropped counts rows discarded for lacking a name.
	Dropped  int       `json:"dropped"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Loader fetches and assembles one source.
type Loader interface {
	Load(ctx context.Context) (Snapshot, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (Snapshot, error)

func (f LoaderFunc) Load(ctx context.Context) (Snapshot, error) { return f(ctx) }

type Board struct {
	mu     sync.RWMutex
	snap   Snapshot
	loaded bool
	now    func() time.Time
}

func New() *Board {
	return &Board{now: time.Now}
}

// Load runs l and installs its snapshot. On error the current collection is
// left untouched. Overlapping loads settle independently; the last one to
// finish wins.
func (b *Board) Load(ctx context.Context, l Loader) (Snapshot, error) {
	snap, err := l.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	b.Replace(snap)
	return snap, nil
}

// Replace installs snap as the current collection.
func (b *Board) Replace(snap Snapshot) {
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = b.now()
	}
	snap.Columns = append([]string(nil), snap.Columns...)
	snap.Tasks = append([]model.Task(nil), snap.Tasks...)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = snap
	b.loaded = true
}

// Clear drops the collection.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = Snapshot{}
	b.loaded = false
}

func (b *Board) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Snapshot returns a copy of the current collection.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := b.snap
	s.Columns = append([]string(nil), b.snap.Columns...)
	s.Tasks = append([]model.Task(nil), b.snap.Tasks...)
	return s
}

func (b *Board) Tasks() []model.Task {
	return b.Snapshot().Tasks
}

// View filters and sorts the current collection.
func (b *Board) View(f view.Filter, s view.Sort) []model.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return view.Apply(b.snap.Tasks, f, s)
}

func (b *Board) Summary() view.Summary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return view.Summarize(b.snap.Tasks)
}

func (b *Board) ByName() []view.NameStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return view.ByName(b.snap.Tasks)
}

func (b *Board) TaskNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return view.TaskNames(b.snap.Tasks)
}

func (b *Board) DueToday() (view.Digest, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return view.DueToday(b.snap.Tasks)
}
