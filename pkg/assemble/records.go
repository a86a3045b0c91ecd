package assemble

import (
	"sort"

	"github.com/harrisonrobin/tasktrack/pkg/dates"
	"github.com/harrisonrobin/tasktrack/pkg/model"
	"github.com/harrisonrobin/tasktrack/pkg/sheet"
)

// Field names used by JSON record sources.
const (
	FieldTaskName    = "Task Name"
	FieldDescription = "Description"
	FieldAssignee    = "Assignee"
	FieldStatus      = "Status"
	FieldStartDate   = "Start Date"
	FieldDeadline    = "Deadline"
)

// StandardFields is the display order of the well-known fields.
var StandardFields = []string{FieldTaskName, FieldDescription, FieldAssignee, FieldStatus, FieldStartDate, FieldDeadline}

const (
	defaultName     = "Untitled"
	defaultAssignee = "Unassigned"
	defaultStatus   = "Pending"
)

// RecordResult is the outcome of assembling JSON records.
type RecordResult struct {
	Columns []string
	Tasks   []model.Task
}

// FromRecords builds tasks straight from keyed records, skipping header
// detection. Missing names, assignees and statuses get placeholder values.
func (a *Assembler) FromRecords(records []model.Record) RecordResult {
	res := RecordResult{Columns: OrderFields(records)}
	for i, rec := range records {
		res.Tasks = append(res.Tasks, a.fromRecord(i, rec, res.Columns))
	}
	return res
}

func (a *Assembler) fromRecord(index int, rec model.Record, order []string) model.Task {
	id := rec.ID
	if id == "" {
		id = a.rowID(index)
	}
	task := model.Task{ID: id, Source: a.source}

	for _, key := range order {
		v, ok := rec.Fields[key]
		if !ok {
			continue
		}
		c := sheet.CellOf(v)
		if key == FieldStartDate || key == FieldDeadline {
			c = sheet.TextCell(dates.Format(dates.Parse(v)))
		}
		task.Columns.Set(key, c)
	}

	text := func(key, fallback string) string {
		if s := sheet.CellOf(rec.Fields[key]).String(); s != "" {
			return s
		}
		return fallback
	}
	task.Description = text(FieldDescription, "")
	a.fill(&task,
		text(FieldTaskName, defaultName),
		text(FieldAssignee, defaultAssignee),
		text(FieldStatus, defaultStatus),
		dates.Parse(rec.Fields[FieldStartDate]),
		dates.Parse(rec.Fields[FieldDeadline]),
	)
	return task
}

// OrderFields returns every field name used by records: the standard fields
// first in their fixed order, then the rest alphabetically.
func OrderFields(records []model.Record) []string {
	seen := make(map[string]bool)
	var extra []string
	for _, rec := range records {
		for k := range rec.Fields {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	var out []string
	for _, k := range StandardFields {
		if seen[k] {
			out = append(out, k)
			delete(seen, k)
		}
	}
	var rest []string
	for _, k := range extra {
		if seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
