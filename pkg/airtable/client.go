// Package airtable lists the records of an Airtable table over its REST API.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/harrisonrobin/tasktrack/pkg/log"
	"github.com/harrisonrobin/tasktrack/pkg/model"
)

const DefaultBaseURL = "https://api.airtable.com/v0"

// Client reads records from one Airtable table.
type Client struct {
	BaseURL string
	APIKey  string
	BaseID  string
	Table   string
	HTTP    *http.Client
}

func NewClient(apiKey, baseID, table string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		BaseID:  baseID,
		Table:   table,
		HTTP:    http.DefaultClient,
	}
}

// APIError is a failed Airtable request, with a message meant for the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return `Unauthorized: Check your API Key (should start with "pat...")`
	case http.StatusForbidden:
		return fmt.Sprintf("Permission Denied (403): %s. Check Token Scopes (data.records:read) and Base Access.", e.Message)
	case http.StatusNotFound:
		return `Not Found: Check your Base ID (starts with "app...") and Table Name`
	default:
		return fmt.Sprintf("Airtable Error (%d): %s", e.StatusCode, e.Message)
	}
}

type page struct {
	Records []model.Record `json:"records"`
	Offset  string         `json:"offset"`
}

// ListRecords fetches every record of the table, following pagination. It
// stops when the server hands back an offset it already returned.
func (c *Client) ListRecords(ctx context.Context) ([]model.Record, error) {
	if c.APIKey == "" || c.BaseID == "" {
		return nil, fmt.Errorf("airtable is not configured: api key and base id are required")
	}
	var all []model.Record
	offset := ""
	seen := make(map[string]bool)
	for {
		p, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Records...)
		if p.Offset == "" {
			return all, nil
		}
		if seen[p.Offset] {
			log.Warnf("airtable returned offset %q twice, stopping after %d records", p.Offset, len(all))
			return all, nil
		}
		seen[p.Offset] = true
		offset = p.Offset
	}
}

func (c *Client) fetchPage(ctx context.Context, offset string) (*page, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.BaseURL, "/"), url.PathEscape(c.BaseID), url.PathEscape(c.Table))
	if offset != "" {
		endpoint += "?offset=" + url.QueryEscape(offset)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airtable request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read airtable response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body, resp.Status)}
	}

	var p page
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal airtable response: %w", err)
	}
	return &p, nil
}

// errorMessage pulls the message out of an Airtable error body, which is
// either {"error": "TEXT"} or {"error": {"type": ..., "message": ...}}.
func errorMessage(body []byte, fallback string) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return fallback
	}
	var detailed struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if err := json.Unmarshal(envelope.Error, &detailed); err == nil {
		if detailed.Message != "" {
			return detailed.Message
		}
		if detailed.Type != "" {
			return detailed.Type
		}
	}
	var text string
	if err := json.Unmarshal(envelope.Error, &text); err == nil && text != "" {
		return text
	}
	return fallback
}

// ParseRecords decodes saved records, either an Airtable page document
// ({"records": [...]}) or a bare array of records.
func ParseRecords(r io.Reader) ([]model.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var records []model.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to decode records json: %w", err)
		}
		return records, nil
	}
	var p page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode records json: %w", err)
	}
	return p.Records, nil
}
