// Package view derives filtered, sorted and aggregated views over a task
// collection. Every function is pure: the input slice is never modified.
package view

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/metrics"
	"github.com/harrisonrobin/tasktrack/pkg/model"
	"github.com/harrisonrobin/tasktrack/pkg/sheet"
)

// Category selects a subset of tasks.
type Category string

const (
	All         Category = "all"
	Delayed     Category = "delayed"
	Completed   Category = "completed"
	InProgress  Category = "inProgress"
	Reappeared  Category = "reappeared"
	DeadlineNow Category = "deadlineNow"
)

// AnyName is the wildcard for Filter.TaskName.
const AnyName = "all"

// ParseCategory accepts the category names, case-insensitively, plus
// "in-progress" and "deadline-now".
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "delayed":
		return Delayed, nil
	case "completed":
		return Completed, nil
	case "inprogress", "in-progress":
		return InProgress, nil
	case "reappeared":
		return Reappeared, nil
	case "deadlinenow", "deadline-now":
		return DeadlineNow, nil
	default:
		return "", fmt.Errorf("unknown filter category %q", s)
	}
}

// Filter is the conjunction of a category, an exact task name (or AnyName)
// and a case-insensitive search on name or assignee.
type Filter struct {
	Category Category
	TaskName string
	Search   string
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// KeyTimeMetrics sorts by the signed day count of the time metric.
const KeyTimeMetrics = "timeMetrics"

// Sort names a sort key and direction. An empty key keeps input order.
// Keys are column labels first, then the internal field names (name,
// assignee, status, startDate, deadline, description, isDelayed, id).
type Sort struct {
	Key       string
	Direction Direction
}

// Matches reports whether task passes f.
func (f Filter) Matches(task model.Task) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(task.Name), q) && !strings.Contains(strings.ToLower(task.Assignee), q) {
			return false
		}
	}
	if f.TaskName != "" && f.TaskName != AnyName && task.Name != f.TaskName {
		return false
	}
	switch f.Category {
	case Delayed:
		return task.IsDelayed
	case Completed:
		return task.Category == lexicon.Completed
	case InProgress:
		return task.Category == lexicon.InProgress
	case Reappeared:
		return task.Category == lexicon.Reappeared
	case DeadlineNow:
		return task.TimeMetrics.Display == metrics.DisplayDeadlineNow
	default:
		return true
	}
}

// Apply returns the tasks that pass f, ordered by s. Ties keep input order.
func Apply(tasks []model.Task, f Filter, s Sort) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	if s.Key == "" {
		return out
	}
	sign := 1
	if s.Direction == Desc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return sign * compare(a, b, s.Key)
	})
	return out
}

func compare(a, b model.Task, key string) int {
	if key == KeyTimeMetrics {
		return cmpInt(a.TimeMetrics.Raw, b.TimeMetrics.Raw)
	}
	av, bv := field(a, key), field(b, key)
	if av.Kind == sheet.Number && bv.Kind == sheet.Number {
		switch {
		case av.Num < bv.Num:
			return -1
		case av.Num > bv.Num:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(av.String()), strings.ToLower(bv.String()))
}

// field resolves a sort key against a task's columns, then its fields.
func field(t model.Task, key string) sheet.Cell {
	if c, ok := t.Columns.Get(key); ok {
		return c
	}
	switch key {
	case "id":
		return sheet.TextCell(t.ID)
	case "name":
		return sheet.TextCell(t.Name)
	case "description":
		return sheet.TextCell(t.Description)
	case "assignee":
		return sheet.TextCell(t.Assignee)
	case "status":
		return sheet.TextCell(t.Status)
	case "startDate":
		return sheet.TextCell(t.StartDate)
	case "deadline":
		return sheet.TextCell(t.Deadline)
	case "isDelayed":
		return sheet.TextCell(strconv.FormatBool(t.IsDelayed))
	}
	return sheet.Cell{}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// TaskNames returns AnyName followed by each distinct non-empty task name in
// first-appearance order.
func TaskNames(tasks []model.Task) []string {
	names := []string{AnyName}
	seen := make(map[string]bool)
	for _, t := range tasks {
		if t.Name == "" || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		names = append(names, t.Name)
	}
	return names
}
