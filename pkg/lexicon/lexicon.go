// Package lexicon holds the synonym tables used to recognise header roles and
// status categories across languages. Tables are data, not code: new locales
// are added by extending a Lexicon, usually from a YAML file.
package lexicon

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrisonrobin/tasktrack/pkg/normalize"
	"gopkg.in/yaml.v3"
)

// Role is the semantic meaning of a column.
type Role string

const (
	RoleName     Role = "name"
	RoleAssignee Role = "assignee"
	RoleStatus   Role = "status"
	RoleStart    Role = "start"
	RoleDeadline Role = "deadline"
)

// Roles lists every role in resolution order.
var Roles = []Role{RoleName, RoleAssignee, RoleStatus, RoleStart, RoleDeadline}

// Category is the normalized class of a free-text status.
type Category string

const (
	Completed  Category = "completed"
	InProgress Category = "inProgress"
	Reappeared Category = "reappeared"
	Other      Category = "other"
)

// Categories lists the matchable categories in classification order.
// Other is the fallback and has no tokens.
var Categories = []Category{Completed, InProgress, Reappeared}

// Lexicon maps roles to header substrings and categories to exact status
// tokens. All tokens are stored normalized.
type Lexicon struct {
	Roles    map[Role][]string     `yaml:"roles"`
	Statuses map[Category][]string `yaml:"statuses"`
}

// Default returns the built-in English/French tables.
func Default() *Lexicon {
	return &Lexicon{
		Roles: map[Role][]string{
			RoleName:     {"task", "nom", "tache"},
			RoleAssignee: {"assign", "responsable"},
			RoleStatus:   {"status", "statut", "etat"},
			RoleStart:    {"start", "debut"},
			RoleDeadline: {"deadline", "fin", "echeance"},
		},
		Statuses: map[Category][]string{
			Completed:  {"done", "completed", "termine", "finished"},
			InProgress: {"in progress", "en cours", "ongoing", "doing"},
			Reappeared: {"reappeared", "reapparu"},
		},
	}
}

// Load returns the default lexicon extended with the tokens in the YAML file
// at path. An empty path yields the defaults.
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("lexicon file %s does not exist", path)
		}
		return nil, err
	}
	var ext Lexicon
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon %s: %w", path, err)
	}
	lex.Extend(&ext)
	return lex, nil
}

// Extend appends the tokens of other, normalizing them and skipping
// duplicates. Unknown roles are ignored; unknown categories are kept so a
// caller can classify into them explicitly.
func (l *Lexicon) Extend(other *Lexicon) {
	if other == nil {
		return
	}
	for _, role := range Roles {
		l.Roles[role] = appendTokens(l.Roles[role], other.Roles[role])
	}
	for cat, toks := range other.Statuses {
		if cat == Other {
			continue
		}
		l.Statuses[cat] = appendTokens(l.Statuses[cat], toks)
	}
}

// MatchesRole reports whether the normalized header text contains one of the
// role's substrings.
func (l *Lexicon) MatchesRole(role Role, normalized string) bool {
	return normalize.ContainsAny(normalized, l.Roles[role])
}

// Category returns the category whose token set contains the normalized
// status exactly, or Other.
func (l *Lexicon) Category(normalized string) Category {
	for _, cat := range Categories {
		for _, tok := range l.Statuses[cat] {
			if tok == normalized {
				return cat
			}
		}
	}
	return Other
}

func appendTokens(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, t := range dst {
		seen[t] = true
	}
	for _, t := range src {
		n := normalize.Text(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		dst = append(dst, n)
	}
	return dst
}
