// Package metrics computes the temporal status of a task: whether it is done,
// due today, late, still has time left, or how long it has been running.
package metrics

import (
	"fmt"

	"github.com/harrisonrobin/tasktrack/pkg/dates"
	"github.com/harrisonrobin/tasktrack/pkg/status"
)

// Severity is a coarse urgency tag for a metric, independent of its text.
type Severity string

const (
	Neutral Severity = "neutral"
	Warning Severity = "warning"
	Urgent  Severity = "urgent"
	Info    Severity = "info"
)

const (
	DisplayOK          = "OK"
	DisplayDeadlineNow = "Deadline Now"
	DisplayNone        = "-"

	// RunningWarnDays is the running time after which a task without a
	// deadline is flagged.
	RunningWarnDays = 15
)

// Metrics is the computed time status of one task. Raw is the signed day
// count used for numeric sorting.
type Metrics struct {
	Display  string   `json:"display"`
	Severity Severity `json:"severityClass"`
	Raw      int      `json:"raw"`
}

// Calculator applies the time rules with a given status classifier.
type Calculator struct {
	classifier *status.Classifier
}

// New returns a Calculator. A nil classifier uses the default lexicon.
func New(c *status.Classifier) *Calculator {
	if c == nil {
		c = status.New(nil)
	}
	return &Calculator{classifier: c}
}

var defaultCalculator = New(nil)

// Compute returns the metrics for a task. Zero dates are absent. Rules apply
// in order: completed, deadline today, deadline passed or ahead, running
// since start, nothing known.
func (c *Calculator) Compute(statusText string, start, deadline, today dates.Date) Metrics {
	if c.classifier.IsCompleted(statusText) {
		return Metrics{Display: DisplayOK, Severity: Neutral}
	}

	if !deadline.IsZero() {
		if deadline.Equal(today) {
			return Metrics{Display: DisplayDeadlineNow, Severity: Urgent}
		}
		diff := today.DaysSince(deadline)
		if diff > 0 {
			return Metrics{Display: fmt.Sprintf("Delayed (+%d days)", diff), Severity: Warning, Raw: diff}
		}
		return Metrics{Display: fmt.Sprintf("%d days left", -diff), Severity: Info, Raw: diff}
	}

	if !start.IsZero() {
		running := today.DaysSince(start)
		m := Metrics{Display: fmt.Sprintf("Running (%d days)", running), Severity: Neutral, Raw: running}
		if running > RunningWarnDays {
			m.Severity = Warning
		}
		return m
	}

	return Metrics{Display: DisplayNone, Severity: Neutral}
}

// IsDelayed reports whether a task that is not completed has a deadline
// strictly before today.
func (c *Calculator) IsDelayed(statusText string, deadline, today dates.Date) bool {
	if deadline.IsZero() || c.classifier.IsCompleted(statusText) {
		return false
	}
	return today.After(deadline)
}

// Compute uses the default lexicon.
func Compute(statusText string, start, deadline, today dates.Date) Metrics {
	return defaultCalculator.Compute(statusText, start, deadline, today)
}

// IsDelayed uses the default lexicon.
func IsDelayed(statusText string, deadline, today dates.Date) bool {
	return defaultCalculator.IsDelayed(statusText, deadline, today)
}
