package sheet

import (
	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/normalize"
)

// Unresolved marks a role that no column claimed.
const Unresolved = -1

// Column is a displayable header: its label and its position in the row.
type Column struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// RoleIndex maps each role to a column position or Unresolved.
type RoleIndex map[lexicon.Role]int

// Get returns the column for role, or Unresolved.
func (ri RoleIndex) Get(role lexicon.Role) int {
	if idx, ok := ri[role]; ok {
		return idx
	}
	return Unresolved
}

// Resolved reports whether some column claimed role.
func (ri RoleIndex) Resolved(role lexicon.Role) bool {
	return ri.Get(role) != Unresolved
}

// Mapping is the result of reading a header row.
type Mapping struct {
	// Columns lists the non-blank header cells in their original order.
	Columns []Column
	Roles   RoleIndex
}

// MapColumns assigns roles to header cells. For each role the leftmost cell
// whose normalized text contains one of the role's substrings wins. A single
// cell may claim several roles.
func MapColumns(header Row, lex *lexicon.Lexicon) Mapping {
	m := Mapping{Roles: make(RoleIndex, len(lexicon.Roles))}
	normalized := make([]string, len(header))
	for i, c := range header {
		normalized[i] = normalize.Text(c.String())
		if !c.IsBlank() {
			m.Columns = append(m.Columns, Column{Index: i, Label: c.String()})
		}
	}
	for _, role := range lexicon.Roles {
		m.Roles[role] = Unresolved
		for i, n := range normalized {
			if n != "" && lex.MatchesRole(role, n) {
				m.Roles[role] = i
				break
			}
		}
	}
	return m
}

// Labels returns the column labels in order.
func (m Mapping) Labels() []string {
	labels := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		labels[i] = c.Label
	}
	return labels
}
