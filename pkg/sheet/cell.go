// Package sheet models a raw table of cells and finds its header row and the
// semantic role of each column.
package sheet

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/tasktrack/pkg/dates"
)

// Kind is the type of value held by a Cell.
type Kind int

const (
	Empty Kind = iota
	Text
	Number
	DateTime
)

// Cell is one value read from a tabular source.
type Cell struct {
	Kind Kind
	Text string
	Num  float64
	Time time.Time
}

func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: Text, Text: s}
}

func NumberCell(f float64) Cell {
	return Cell{Kind: Number, Num: f}
}

func DateCell(t time.Time) Cell {
	if t.IsZero() {
		return Cell{}
	}
	return Cell{Kind: DateTime, Time: t}
}

// CellOf converts a decoded JSON or API value into a Cell. Objects with a
// "name" key (collaborators, linked records) collapse to that name and lists
// are joined with ", ".
func CellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{}
	case Cell:
		return x
	case string:
		return TextCell(x)
	case float64:
		return NumberCell(x)
	case float32:
		return NumberCell(float64(x))
	case int:
		return NumberCell(float64(x))
	case int64:
		return NumberCell(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return NumberCell(f)
		}
		return TextCell(x.String())
	case bool:
		return TextCell(strconv.FormatBool(x))
	case time.Time:
		return DateCell(x)
	case map[string]any:
		if name, ok := x["name"].(string); ok {
			return TextCell(name)
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, CellOf(x[k]).String()))
		}
		return TextCell(strings.Join(parts, ", "))
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s := CellOf(item).String(); s != "" {
				parts = append(parts, s)
			}
		}
		return TextCell(strings.Join(parts, ", "))
	default:
		return TextCell(fmt.Sprint(x))
	}
}

// Value returns the cell as nil, string, float64 or time.Time.
func (c Cell) Value() any {
	switch c.Kind {
	case Text:
		return c.Text
	case Number:
		return c.Num
	case DateTime:
		return c.Time
	default:
		return nil
	}
}

// String renders the cell as display text. Dates use DD/MM/YYYY.
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Text
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case DateTime:
		return dates.Format(dates.Of(c.Time))
	default:
		return ""
	}
}

// IsBlank reports whether the cell has no visible text.
func (c Cell) IsBlank() bool {
	return strings.TrimSpace(c.String()) == ""
}

// MarshalJSON keeps numbers numeric and renders everything else as text.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Kind == Number {
		return json.Marshal(c.Num)
	}
	return json.Marshal(c.String())
}

// Row is one ordered row of cells.
type Row []Cell

// At returns the cell at column i, or an empty cell when i is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Table is a raw tabular input: rows of cells, as read from a file, a URL or
// an API. It is not modified once read.
type Table []Row
