package status

import (
	"testing"

	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want lexicon.Category
	}{
		{"Done", lexicon.Completed},
		{"COMPLETED", lexicon.Completed},
		{"Terminé", lexicon.Completed},
		{" finished ", lexicon.Completed},
		{"In Progress", lexicon.InProgress},
		{"En cours", lexicon.InProgress},
		{"Ongoing", lexicon.InProgress},
		{"doing", lexicon.InProgress},
		{"Reappeared", lexicon.Reappeared},
		{"Réapparu", lexicon.Reappeared},
		{"Pending", lexicon.Other},
		{"", lexicon.Other},
		{"Done?", lexicon.Other},
	}
	for _, tc := range cases {
		if got := Classify(tc.in); got != tc.want {
			t.Errorf("Classify(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestClassifierWithExtendedLexicon(t *testing.T) {
	lex := lexicon.Default()
	lex.Extend(&lexicon.Lexicon{Statuses: map[lexicon.Category][]string{
		lexicon.Completed: {"Erledigt"},
	}})
	c := New(lex)
	if !c.IsCompleted("erledigt") {
		t.Error("Expected 'erledigt' to be completed with extended lexicon")
	}
	if IsCompleted("erledigt") {
		t.Error("Default classifier must not see extensions")
	}
}
