// Package google reads sheet values through the Sheets v4 API.
package google

import (
	"context"
	"fmt"
	"strings"

	"github.com/harrisonrobin/tasktrack/pkg/auth"
	"github.com/harrisonrobin/tasktrack/pkg/sheet"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient reads private spreadsheets through the Sheets API.
type SheetsClient struct {
	srv *sheets.Service
}

// NewClient creates a Sheets client authorized with the cached OAuth token,
// running the browser flow when there is none.
func NewClient(ctx context.Context) (*SheetsClient, error) {
	srv, err := auth.GetSheetsService(ctx)
	if err != nil {
		return nil, err
	}
	return NewSheetsClient(srv), nil
}

func NewSheetsClient(srv *sheets.Service) *SheetsClient {
	return &SheetsClient{srv: srv}
}

// ReadTable returns the cells of readRange as a raw table. Values are read
// unformatted, so dates arrive as serial numbers. An empty range reads the
// whole first sheet.
func (c *SheetsClient) ReadTable(ctx context.Context, spreadsheetID, readRange string) (sheet.Table, error) {
	if readRange == "" {
		title, err := c.firstSheetTitle(ctx, spreadsheetID)
		if err != nil {
			return nil, err
		}
		readRange = quoteSheetTitle(title)
	}

	resp, err := c.srv.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read range %q of spreadsheet %s: %w", readRange, spreadsheetID, err)
	}

	table := make(sheet.Table, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make(sheet.Row, len(values))
		for i, v := range values {
			row[i] = sheet.CellOf(v)
		}
		table = append(table, row)
	}
	return table, nil
}

func (c *SheetsClient) firstSheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	ss, err := c.srv.Spreadsheets.Get(spreadsheetID).
		Fields(googleapi.Field("sheets.properties.title")).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}
	return ss.Sheets[0].Properties.Title, nil
}

// quoteSheetTitle makes a sheet title usable as an A1 range.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
