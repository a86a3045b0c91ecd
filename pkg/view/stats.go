package view

import (
	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/metrics"
	"github.com/harrisonrobin/tasktrack/pkg/model"
)

// Summary counts tasks per headline category. InProgress leaves out tasks
// due today, which are counted in DeadlineNow.
type Summary struct {
	Total       int `json:"total"`
	Delayed     int `json:"delayed"`
	Completed   int `json:"completed"`
	InProgress  int `json:"inProgress"`
	DeadlineNow int `json:"deadlineNow"`
}

// NameStats breaks one task name down by state.
type NameStats struct {
	Name        string `json:"name"`
	Total       int    `json:"total"`
	Delayed     int    `json:"delayed"`
	Completed   int    `json:"completed"`
	InProgress  int    `json:"inProgress"`
	Reappeared  int    `json:"reappeared"`
	DeadlineNow int    `json:"deadlineNow"`
}

func isDeadlineNow(t model.Task) bool {
	return t.TimeMetrics.Display == metrics.DisplayDeadlineNow
}

// Summarize counts the collection.
func Summarize(tasks []model.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsDelayed {
			s.Delayed++
		}
		if isDeadlineNow(t) {
			s.DeadlineNow++
		}
		switch t.Category {
		case lexicon.Completed:
			s.Completed++
		case lexicon.InProgress:
			if !isDeadlineNow(t) {
				s.InProgress++
			}
		}
	}
	return s
}

// ByName returns per-name statistics in first-appearance order. Each task
// counts toward at most one of Completed, InProgress and Reappeared.
func ByName(tasks []model.Task) []NameStats {
	var out []NameStats
	index := make(map[string]int)
	for _, t := range tasks {
		if t.Name == "" {
			continue
		}
		i, ok := index[t.Name]
		if !ok {
			i = len(out)
			index[t.Name] = i
			out = append(out, NameStats{Name: t.Name})
		}
		ns := &out[i]
		ns.Total++
		if t.IsDelayed {
			ns.Delayed++
		}
		now := isDeadlineNow(t)
		if now {
			ns.DeadlineNow++
		}
		switch {
		case t.Category == lexicon.Completed:
			ns.Completed++
		case t.Category == lexicon.InProgress && !now:
			ns.InProgress++
		case t.Category == lexicon.Reappeared:
			ns.Reappeared++
		}
	}
	return out
}
