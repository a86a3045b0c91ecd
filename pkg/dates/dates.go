// Package dates works in whole calendar days. A Date has no time of day and
// no location, so differences between two dates are always an exact number of
// days.
package dates

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const secondsPerDay = 24 * 60 * 60

// Date is a calendar day. The zero value means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const (
	minYear = 1
	maxYear = 9999

	// maxSerial is 9999-12-31, the last day spreadsheets can represent.
	maxSerial = 2958465
)

// serialEpoch is day zero of the spreadsheet serial-date convention.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Day-month-year with '/', '-' or '.' separators. Anything after the year
// (typically a time) is ignored.
var reDMY = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})`)

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the calendar day of now. Callers pass now explicitly so the
// result is reproducible.
func Today(now time.Time) Date {
	return Of(now)
}

// New builds a Date and reports whether y-m-d names a real calendar day
// between years 1 and 9999.
func New(y int, m time.Month, d int) (Date, bool) {
	if y < minYear || y > maxYear || m < time.January || m > time.December || d < 1 {
		return Date{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != m {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

// IsZero reports whether d is the null date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysSince returns d minus other in whole days.
func (d Date) DaysSince(other Date) int {
	return int((d.Time().Unix() - other.Time().Unix()) / secondsPerDay)
}

func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) Before(other Date) bool { return d.DaysSince(other) < 0 }
func (d Date) After(other Date) bool  { return d.DaysSince(other) > 0 }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Of(d.Time().AddDate(0, 0, n))
}

func (d Date) String() string {
	return Format(d)
}

// Format renders d as DD/MM/YYYY, or "-" for the null date.
func Format(d Date) string {
	if d.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// Parse converts a raw cell value into a Date. It accepts time.Time values,
// numbers (spreadsheet serials counted from 1899-12-30) and text. Text in
// D/M/YYYY form is always read day first. Other text is handed to a generic
// date parser. Anything unusable yields the zero Date.
func Parse(v any) Date {
	switch x := v.(type) {
	case nil:
		return Date{}
	case Date:
		return x
	case time.Time:
		if x.IsZero() {
			return Date{}
		}
		return Of(x)
	case *time.Time:
		if x == nil {
			return Date{}
		}
		return Parse(*x)
	case float64:
		return FromSerial(x)
	case float32:
		return FromSerial(float64(x))
	case int:
		return FromSerial(float64(x))
	case int64:
		return FromSerial(float64(x))
	case int32:
		return FromSerial(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Date{}
		}
		return FromSerial(f)
	case string:
		return ParseText(x)
	default:
		return Date{}
	}
}

// FromSerial converts a spreadsheet day serial. Fractions (time of day) are
// dropped. Zero is an empty cell, not 1899-12-30; serials past 9999-12-31
// are rejected.
func FromSerial(serial float64) Date {
	if serial == 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
		return Date{}
	}
	days := math.Floor(serial)
	if days > maxSerial || days < -maxSerial {
		return Date{}
	}
	t := serialEpoch.AddDate(0, 0, int(days))
	d, ok := New(t.Year(), t.Month(), t.Day())
	if !ok {
		return Date{}
	}
	return d
}

// ParseText parses a textual date. See Parse.
func ParseText(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	if m := reDMY.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		d, ok := New(year, time.Month(month), day)
		if !ok {
			return Date{}
		}
		return d
	}
	return parseGeneric(s)
}

func parseGeneric(s string) (d Date) {
	// dateparse panics on a handful of malformed inputs.
	defer func() {
		if recover() != nil {
			d = Date{}
		}
	}()
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return Date{}
	}
	d, _ = New(t.Year(), t.Month(), t.Day())
	return d
}
