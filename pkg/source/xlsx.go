// Package source reads raw tables from spreadsheet files, CSV, and published
// Google Sheets.
package source

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/harrisonrobin/tasktrack/pkg/sheet"
	"github.com/xuri/excelize/v2"
)

var (
	reQuoted    = regexp.MustCompile(`"[^"]*"`)
	reBracketed = regexp.MustCompile(`\[[^\]]*\]`)
)

// ReadXLSX reads the first worksheet of a workbook. Numeric cells styled with
// a date format become date cells.
func ReadXLSX(r io.Reader) (sheet.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	styles := make(map[int]bool)
	table := make(sheet.Table, len(rows))
	for r, row := range rows {
		cells := make(sheet.Row, len(row))
		for c, raw := range row {
			num, isNum := parseNumber(raw)
			if !isNum {
				cells[c] = sheet.TextCell(raw)
				continue
			}
			if isDateStyled(f, name, c+1, r+1, styles) {
				if t, err := excelize.ExcelDateToTime(num, date1904); err == nil {
					cells[c] = sheet.DateCell(t)
					continue
				}
			}
			cells[c] = sheet.NumberCell(num)
		}
		table[r] = cells
	}
	return table, nil
}

func isDateStyled(f *excelize.File, sheetName string, col, row int, cache map[int]bool) bool {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	id, err := f.GetCellStyle(sheetName, cell)
	if err != nil || id == 0 {
		return false
	}
	if v, ok := cache[id]; ok {
		return v
	}
	v := false
	if style, err := f.GetStyle(id); err == nil {
		v = isDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	cache[id] = v
	return v
}

// isDateFormat reports whether a number format renders a calendar date.
func isDateFormat(numFmt int, custom *string) bool {
	switch {
	case numFmt >= 14 && numFmt <= 17, numFmt == 22:
		return true
	}
	if custom == nil {
		return false
	}
	code := strings.ToLower(*custom)
	code = reQuoted.ReplaceAllString(code, "")
	code = reBracketed.ReplaceAllString(code, "")
	return strings.ContainsAny(code, "dy")
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
