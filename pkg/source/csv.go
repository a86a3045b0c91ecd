package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrisonrobin/tasktrack/pkg/sheet"
)

// ErrUnsupportedFormat is returned by ReadFile for unknown extensions.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads delimited text. Numeric cells become numbers, everything else
// stays text. Rows may have different lengths.
func ReadCSV(r io.Reader, comma rune) (sheet.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	table := make(sheet.Table, len(records))
	for i, rec := range records {
		row := make(sheet.Row, len(rec))
		for j, v := range rec {
			if num, ok := parseNumber(v); ok {
				row[j] = sheet.NumberCell(num)
			} else {
				row[j] = sheet.TextCell(v)
			}
		}
		table[i] = row
	}
	return table, nil
}

// ReadFile reads a table from path, choosing the reader by extension.
func ReadFile(path string) (sheet.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm", ".csv", ".tsv", ".tab":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext {
	case ".csv":
		return ReadCSV(f, ',')
	case ".tsv", ".tab":
		return ReadCSV(f, '\t')
	default:
		return ReadXLSX(f)
	}
}
