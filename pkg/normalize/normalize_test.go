package normalize

import "testing"

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Statut", "statut"},
		{"STATUT", "statut"},
		{"  État  ", "etat"},
		{"Échéance", "echeance"},
		{"Terminé", "termine"},
		{"Réapparu", "reapparu"},
		{"Tâche", "tache"},
		{"Début", "debut"},
		{"In Progress", "in progress"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Errorf("Text(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("nom de la tache", []string{"task", "tache"}) {
		t.Error("Expected match on 'tache'")
	}
	if ContainsAny("responsable", []string{"status", "statut"}) {
		t.Error("Expected no match")
	}
	if ContainsAny("anything", []string{""}) {
		t.Error("Empty token must never match")
	}
}
