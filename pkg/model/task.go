// Package model defines the canonical task and the raw record shapes.
package model

import (
	"bytes"
	"encoding/json"

	"github.com/harrisonrobin/tasktrack/pkg/dates"
	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/metrics"
	"github.com/harrisonrobin/tasktrack/pkg/sheet"
)

// Task is the canonical record built from one source row. Columns carries
// every original column under its header label; the other fields are
// computed and never collide with column names.
type Task struct {
	ID          string           `json:"id"`
	Source      string           `json:"source,omitempty"`
	Columns     Columns          `json:"columns"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Assignee    string           `json:"assignee"`
	Status      string           `json:"status"`
	StartDate   string           `json:"startDate"`
	Deadline    string           `json:"deadline"`
	Start       dates.Date       `json:"-"`
	Due         dates.Date       `json:"-"`
	Category    lexicon.Category `json:"category"`
	IsDelayed   bool             `json:"isDelayed"`
	TimeMetrics metrics.Metrics  `json:"timeMetrics"`
}

// Record is one object from a JSON record source: a native ID and arbitrary
// named fields.
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Columns is an insertion-ordered mapping from header label to cell.
type Columns struct {
	labels []string
	values map[string]sheet.Cell
}

// Set stores v under label. Setting an existing label replaces its value
// without changing its position.
func (c *Columns) Set(label string, v sheet.Cell) {
	if c.values == nil {
		c.values = make(map[string]sheet.Cell)
	}
	if _, ok := c.values[label]; !ok {
		c.labels = append(c.labels, label)
	}
	c.values[label] = v
}

// Get returns the cell stored under label.
func (c Columns) Get(label string) (sheet.Cell, bool) {
	v, ok := c.values[label]
	return v, ok
}

// Labels returns the labels in insertion order.
func (c Columns) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

func (c Columns) Len() int {
	return len(c.labels)
}

// MarshalJSON writes the columns as an object in insertion order.
func (c Columns) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range c.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.values[label])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
