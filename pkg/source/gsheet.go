package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/harrisonrobin/tasktrack/pkg/sheet"
)

// ErrSheetUnavailable is the user-facing failure for a published sheet that
// cannot be fetched.
var ErrSheetUnavailable = errors.New(`could not load Google Sheet. Ensure "Anyone with the link" is set to Viewer`)

var (
	reSheetID = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	rePubHTML = regexp.MustCompile(`/pubhtml.*`)
)

// SheetExportURL rewrites a Google Sheets link into its CSV export link.
// "Published to the web" links (/pubhtml) become /pub?output=csv, edit links
// become /export?format=csv. Other URLs are returned unchanged.
func SheetExportURL(raw string) string {
	if strings.Contains(raw, "/pubhtml") {
		return rePubHTML.ReplaceAllString(raw, "/pub?output=csv")
	}
	// /d/e/... is the published-document prefix, not a spreadsheet ID.
	if m := reSheetID.FindStringSubmatch(raw); m != nil && m[1] != "e" {
		return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", m[1])
	}
	return raw
}

// FetchSheet downloads a public sheet as CSV. A nil client uses
// http.DefaultClient. Failures are not retried.
func FetchSheet(ctx context.Context, client *http.Client, rawURL string) (sheet.Table, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, SheetExportURL(rawURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetUnavailable, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w (HTTP %d)", ErrSheetUnavailable, resp.StatusCode)
	}
	return ReadCSV(resp.Body, ',')
}
