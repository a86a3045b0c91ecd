// Package status maps free-text status labels onto canonical states.
package status

import (
	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/normalize"
)

// Classifier maps free-text statuses to categories using a lexicon.
type Classifier struct {
	lex *lexicon.Lexicon
}

// New returns a Classifier backed by lex, or by the default lexicon when lex
// is nil.
func New(lex *lexicon.Lexicon) *Classifier {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Classifier{lex: lex}
}

var defaultClassifier = New(nil)

// Classify returns the category of raw, matching case and accent insensitively.
func (c *Classifier) Classify(raw string) lexicon.Category {
	return c.lex.Category(normalize.Text(raw))
}

// IsCompleted reports whether raw is a completed status.
func (c *Classifier) IsCompleted(raw string) bool {
	return c.Classify(raw) == lexicon.Completed
}

// Classify uses the default lexicon.
func Classify(raw string) lexicon.Category {
	return defaultClassifier.Classify(raw)
}

// IsCompleted uses the default lexicon.
func IsCompleted(raw string) bool {
	return defaultClassifier.IsCompleted(raw)
}
