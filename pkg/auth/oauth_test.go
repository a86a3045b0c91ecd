package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestRedirectURL(t *testing.T) {
	cases := map[string]string{
		"http://localhost":                 "http://localhost:6789",
		"http://localhost:8080/cb":         "http://localhost:6789/cb",
		"http://127.0.0.1/oauth2callback":  "http://127.0.0.1:6789/oauth2callback",
		"urn:ietf:wg:oauth:2.0:oob":        "http://localhost:6789/oauth2callback",
		"https://example.com/oauth2/redir": "https://example.com/oauth2/redir",
	}
	for in, want := range cases {
		if got := redirectURL(in); got != want {
			t.Errorf("redirectURL(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestTokenFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", TokenFile)
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := saveToken(path, tok); err != nil {
		t.Fatalf("saveToken failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}

	got, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("tokenFromFile failed: %v", err)
	}
	if got.AccessToken != "access" || got.RefreshToken != "refresh" || !got.Expiry.Equal(tok.Expiry) {
		t.Errorf("Unexpected token %+v", got)
	}
}

func TestRemoveTokenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := RemoveToken(); err != nil {
		t.Errorf("Expected no error for missing token, got %v", err)
	}
}
