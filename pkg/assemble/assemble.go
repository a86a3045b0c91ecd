// Package assemble turns raw tabular rows, or JSON records, into canonical
// task records with their computed time metrics.
package assemble

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harrisonrobin/tasktrack/pkg/dates"
	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/metrics"
	"github.com/harrisonrobin/tasktrack/pkg/model"
	"github.com/harrisonrobin/tasktrack/pkg/sheet"
	"github.com/harrisonrobin/tasktrack/pkg/status"
)

// Options configures an Assembler.
type Options struct {
	// Lexicon defaults to lexicon.Default().
	Lexicon *lexicon.Lexicon
	// Today is the reference day for every time metric.
	Today dates.Date
	// Source labels the input and seeds row-derived IDs.
	Source string
}

// Assembler builds task records for one load.
type Assembler struct {
	lex        *lexicon.Lexicon
	classifier *status.Classifier
	calc       *metrics.Calculator
	today      dates.Date
	source     string
}

func New(opts Options) *Assembler {
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	classifier := status.New(lex)
	return &Assembler{
		lex:        lex,
		classifier: classifier,
		calc:       metrics.New(classifier),
		today:      opts.Today,
		source:     opts.Source,
	}
}

// TableResult is the outcome of assembling a raw table.
type TableResult struct {
	Header  sheet.Header
	Mapping sheet.Mapping
	Tasks   []model.Task
	// Dropped counts data rows discarded for lacking a name.
	Dropped int
}

// Columns returns the canonical column labels.
func (r TableResult) Columns() []string {
	return r.Mapping.Labels()
}

// FromTable locates the header, maps column roles and builds one task per
// data row below the header. Rows without a name are dropped.
func (a *Assembler) FromTable(t sheet.Table) TableResult {
	res := TableResult{Header: sheet.LocateHeader(t, a.lex)}
	res.Mapping = sheet.MapColumns(res.Header.Cells, a.lex)
	if len(t) == 0 {
		return res
	}
	for i, row := range t[res.Header.Index+1:] {
		task, ok := a.fromRow(i, row, res.Mapping)
		if !ok {
			res.Dropped++
			continue
		}
		res.Tasks = append(res.Tasks, task)
	}
	return res
}

func (a *Assembler) fromRow(index int, row sheet.Row, m sheet.Mapping) (model.Task, bool) {
	nameIdx := m.Roles.Get(lexicon.RoleName)
	name := row.At(nameIdx).String()
	if strings.TrimSpace(name) == "" {
		return model.Task{}, false
	}

	startIdx := m.Roles.Get(lexicon.RoleStart)
	deadlineIdx := m.Roles.Get(lexicon.RoleDeadline)

	task := model.Task{ID: a.rowID(index), Source: a.source}
	for _, col := range m.Columns {
		c := row.At(col.Index)
		switch {
		case col.Index == startIdx || col.Index == deadlineIdx:
			c = sheet.TextCell(dates.Format(dates.Parse(c.Value())))
		case c.Kind == sheet.DateTime:
			c = sheet.TextCell(dates.Format(dates.Of(c.Time)))
		}
		task.Columns.Set(col.Label, c)
	}

	start := dates.Parse(row.At(startIdx).Value())
	due := dates.Parse(row.At(deadlineIdx).Value())
	a.fill(&task, name, row.At(m.Roles.Get(lexicon.RoleAssignee)).String(), row.At(m.Roles.Get(lexicon.RoleStatus)).String(), start, due)
	return task, true
}

func (a *Assembler) fill(task *model.Task, name, assignee, statusText string, start, due dates.Date) {
	task.Name = name
	task.Assignee = assignee
	task.Status = statusText
	task.Start = start
	task.Due = due
	task.StartDate = dates.Format(start)
	task.Deadline = dates.Format(due)
	task.Category = a.classifier.Classify(statusText)
	task.IsDelayed = a.calc.IsDelayed(statusText, due, a.today)
	task.TimeMetrics = a.calc.Compute(statusText, start, due, a.today)
}

func (a *Assembler) rowID(index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("tasktrack:%s#%d", a.source, index))).String()
}
