package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCategory(t *testing.T) {
	lex := Default()
	cases := map[string]Category{
		"done":      Completed,
		"termine":   Completed,
		"en cours":  InProgress,
		"doing":     InProgress,
		"reapparu":  Reappeared,
		"pending":   Other,
		"done soon": Other,
		"":          Other,
	}
	for in, want := range cases {
		if got := lex.Category(in); got != want {
			t.Errorf("Category(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestMatchesRole(t *testing.T) {
	lex := Default()
	if !lex.MatchesRole(RoleDeadline, "date de fin") {
		t.Error("Expected 'date de fin' to match deadline")
	}
	if !lex.MatchesRole(RoleAssignee, "assigned to") {
		t.Error("Expected 'assigned to' to match assignee")
	}
	if lex.MatchesRole(RoleStart, "echeance") {
		t.Error("Did not expect 'echeance' to match start")
	}
}

func TestLoadExtendsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	data := []byte("roles:\n  name: [Aufgabe]\n  deadline: [Frist, fin]\nstatuses:\n  completed: [Erledigt]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	lex, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !lex.MatchesRole(RoleName, "aufgabe") {
		t.Error("Expected extended name token 'aufgabe'")
	}
	if !lex.MatchesRole(RoleName, "task name") {
		t.Error("Expected default name tokens to survive extension")
	}
	if got := lex.Category("erledigt"); got != Completed {
		t.Errorf("Expected completed for 'erledigt', got %s", got)
	}
	count := 0
	for _, tok := range lex.Roles[RoleDeadline] {
		if tok == "fin" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected 'fin' once in deadline tokens, got %d", count)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	lex, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(lex.Roles[RoleStatus]) != 3 {
		t.Errorf("Expected 3 default status tokens, got %d", len(lex.Roles[RoleStatus]))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing lexicon file")
	}
}
