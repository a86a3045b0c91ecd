package airtable

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListRecordsFollowsOffset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer patKEY" {
			t.Errorf("Expected bearer token, got %q", got)
		}
		if r.URL.Path != "/appBASE/My Tasks" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		switch r.URL.Query().Get("offset") {
		case "":
			fmt.Fprint(w, `{"records":[{"id":"rec1","fields":{"Task Name":"A"}}],"offset":"itr2"}`)
		case "itr2":
			fmt.Fprint(w, `{"records":[{"id":"rec2","fields":{"Task Name":"B","Deadline":"2024-06-15"}}]}`)
		default:
			t.Errorf("Unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	defer srv.Close()

	c := NewClient("patKEY", "appBASE", "My Tasks")
	c.BaseURL = srv.URL
	c.HTTP = srv.Client()

	records, err := c.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[1].ID != "rec2" || records[1].Fields["Deadline"] != "2024-06-15" {
		t.Errorf("Unexpected second record %+v", records[1])
	}
}

func TestListRecordsStopsOnRepeatedOffset(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 5 {
			t.Errorf("Expected pagination to stop, got %d requests", calls)
			fmt.Fprint(w, `{"records":[]}`)
			return
		}
		fmt.Fprintf(w, `{"records":[{"id":"rec%d","fields":{}}],"offset":"itr1"}`, calls)
	}))
	defer srv.Close()

	c := NewClient("patKEY", "appBASE", "Tasks")
	c.BaseURL = srv.URL

	records, err := c.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 requests, got %d", calls)
	}
	if len(records) != 2 {
		t.Errorf("Expected the 2 records fetched before the repeat, got %d", len(records))
	}
}

func TestListRecordsErrors(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   string
	}{
		{401, `{"error":"AUTHENTICATION_REQUIRED"}`, "Unauthorized"},
		{403, `{"error":{"type":"INVALID_PERMISSIONS","message":"Invalid permissions"}}`, "Permission Denied (403): Invalid permissions"},
		{404, `{"error":"NOT_FOUND"}`, "Not Found"},
		{422, `{"error":{"type":"INVALID_REQUEST_UNKNOWN"}}`, "Airtable Error (422): INVALID_REQUEST_UNKNOWN"},
		{500, `oops`, "Airtable Error (500): 500 Internal Server Error"},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			fmt.Fprint(w, tc.body)
		}))
		c := NewClient("patKEY", "appBASE", "Tasks")
		c.BaseURL = srv.URL
		_, err := c.ListRecords(context.Background())
		srv.Close()

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Errorf("status %d: expected APIError, got %v", tc.status, err)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("status %d: expected message containing %q, got %q", tc.status, tc.want, err.Error())
		}
	}
}

func TestListRecordsRequiresConfig(t *testing.T) {
	if _, err := NewClient("", "appBASE", "Tasks").ListRecords(context.Background()); err == nil {
		t.Error("Expected error without api key")
	}
}

func TestParseRecords(t *testing.T) {
	page := `{"records":[{"id":"rec1","fields":{"Task Name":"A","Points":3}}]}`
	records, err := ParseRecords(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(records) != 1 || records[0].Fields["Points"] != 3.0 {
		t.Errorf("Unexpected records %+v", records)
	}

	bare := ` [{"fields":{"Task Name":"B"}}] `
	records, err = ParseRecords(strings.NewReader(bare))
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "" {
		t.Errorf("Unexpected records %+v", records)
	}

	if _, err := ParseRecords(strings.NewReader("{")); err == nil {
		t.Error("Expected decode error")
	}
}
