package sheet

import (
	"github.com/harrisonrobin/tasktrack/pkg/lexicon"
	"github.com/harrisonrobin/tasktrack/pkg/normalize"
)

// HeaderScanRows is how many leading rows are searched for a header.
const HeaderScanRows = 20

// Header is the row chosen as column headers.
type Header struct {
	Index int
	Cells Row
	// Found is false when no row qualified and row 0 was used.
	Found bool
}

// LocateHeader returns the first row within the scan window that has both a
// name-like and a status-like cell. When none qualifies, row 0 is used; a
// header lying deeper than the window is then read as data.
func LocateHeader(t Table, lex *lexicon.Lexicon) Header {
	limit := min(len(t), HeaderScanRows)
	for i := 0; i < limit; i++ {
		if isHeaderRow(t[i], lex) {
			return Header{Index: i, Cells: t[i], Found: true}
		}
	}
	if len(t) == 0 {
		return Header{}
	}
	return Header{Index: 0, Cells: t[0]}
}

func isHeaderRow(row Row, lex *lexicon.Lexicon) bool {
	hasName, hasStatus := false, false
	for _, c := range row {
		n := normalize.Text(c.String())
		if n == "" {
			continue
		}
		hasName = hasName || lex.MatchesRole(lexicon.RoleName, n)
		hasStatus = hasStatus || lex.MatchesRole(lexicon.RoleStatus, n)
		if hasName && hasStatus {
			return true
		}
	}
	return false
}
