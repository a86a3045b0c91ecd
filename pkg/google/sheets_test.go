package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harrisonrobin/tasktrack/pkg/sheet"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *SheetsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return NewSheetsClient(svc)
}

func TestReadTableFirstSheet(t *testing.T) {
	var requests []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/values/'Suivi d''équipe'"):
			if got := r.URL.Query().Get("valueRenderOption"); got != "UNFORMATTED_VALUE" {
				t.Errorf("Expected UNFORMATTED_VALUE, got %q", got)
			}
			if got := r.URL.Query().Get("dateTimeRenderOption"); got != "SERIAL_NUMBER" {
				t.Errorf("Expected SERIAL_NUMBER, got %q", got)
			}
			fmt.Fprint(w, `{"values":[["Tâche","Statut","Échéance"],["Audit","En cours",45444],["Done",true]]}`)
		case strings.HasSuffix(r.URL.Path, "/spreadsheets/abc"):
			fmt.Fprint(w, `{"sheets":[{"properties":{"title":"Suivi d'équipe"}},{"properties":{"title":"Other"}}]}`)
		default:
			http.NotFound(w, r)
		}
	})

	table, err := client.ReadTable(context.Background(), "abc", "")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(requests) != 2 {
		t.Errorf("Expected 2 requests, got %v", requests)
	}
	if len(table) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table))
	}
	if c := table[1].At(2); c.Kind != sheet.Number || c.Num != 45444 {
		t.Errorf("Expected serial number cell, got %+v", c)
	}
	if c := table[2].At(1); c.Kind != sheet.Text || c.Text != "true" {
		t.Errorf("Expected bool rendered as text, got %+v", c)
	}
	if c := table[2].At(2); c.Kind != sheet.Empty {
		t.Errorf("Expected empty cell past row end, got %+v", c)
	}
}

func TestReadTableError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"denied"}}`)
	})
	if _, err := client.ReadTable(context.Background(), "abc", "A1:C10"); err == nil {
		t.Error("Expected error for forbidden spreadsheet")
	}
}

func TestQuoteSheetTitle(t *testing.T) {
	if got := quoteSheetTitle("It's"); got != "'It''s'" {
		t.Errorf("Expected 'It''s', got %s", got)
	}
}
