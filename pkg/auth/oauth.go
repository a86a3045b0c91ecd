// Package auth runs the OAuth2 flow for Google Sheets and caches the token.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/harrisonrobin/tasktrack/pkg/config"
	"github.com/harrisonrobin/tasktrack/pkg/log"
)

const (
	// ClientSecretsFile is the downloaded Google API credentials file, read
	// from the config directory (~/.config/tasktrack).
	ClientSecretsFile = "credentials.json"

	// TokenFile holds the user's access and refresh token, next to the
	// client secrets.
	TokenFile = "token.json"

	// LocalhostAuthPort is the port the local web server listens on to
	// capture the OAuth redirect.
	LocalhostAuthPort = "6789"

	authTimeout = 5 * time.Minute
)

// SheetsScopes are the scopes needed to read private spreadsheets.
var SheetsScopes = []string{sheets.SpreadsheetsReadonlyScope}

// GetConfig creates an oauth2.Config from the client secrets file and scopes.
func GetConfig(scopes []string) (*oauth2.Config, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	clientSecretsFile := filepath.Join(dir, ClientSecretsFile)
	b, err := os.ReadFile(clientSecretsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", clientSecretsFile, err)
	}

	cfg, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	cfg.RedirectURL = redirectURL(cfg.RedirectURL)
	return cfg, nil
}

// redirectURL forces localhost redirects onto LocalhostAuthPort, since that
// is where the callback listener runs. The out-of-band URI is replaced by a
// localhost callback.
func redirectURL(configured string) string {
	if configured == "urn:ietf:wg:oauth:2.0:oob" {
		u := fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
		log.Infof("Overriding out-of-band RedirectURL to: %s", u)
		return u
	}
	parsed, err := url.Parse(configured)
	if err != nil {
		log.Warnf("Could not parse RedirectURL '%s': %v. Using it as is.", configured, err)
		return configured
	}
	if parsed.Hostname() != "localhost" && parsed.Hostname() != "127.0.0.1" {
		log.Warnf("RedirectURL in credentials.json is not a localhost callback: %s", configured)
		return configured
	}
	if parsed.Port() != "" && parsed.Port() != LocalhostAuthPort {
		log.Warnf("credentials.json redirect port %s differs from %s; forcing %s", parsed.Port(), LocalhostAuthPort, LocalhostAuthPort)
	}
	parsed.Host = net.JoinHostPort(parsed.Hostname(), LocalhostAuthPort)
	return parsed.String()
}

// TokenPath returns where the OAuth token is cached.
func TokenPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TokenFile), nil
}

// RemoveToken deletes a cached token so the next client runs the web flow.
// A missing token is not an error.
func RemoveToken() error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not delete token file '%s': %w. Please delete it manually", path, err)
	}
	return nil
}

// GetClient retrieves an authenticated *http.Client. It loads an existing
// token, or runs the web authorization flow when none is cached. The
// returned client refreshes expired access tokens on its own.
func GetClient(ctx context.Context, scopes []string) (*http.Client, error) {
	cfg, err := GetConfig(scopes)
	if err != nil {
		return nil, err
	}

	tokenFile, err := TokenPath()
	if err != nil {
		return nil, err
	}
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		log.Infof("No existing token found at %s. Initiating web authorization flow...", tokenFile)
		tok, err = getTokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to get token from web: %w", err)
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}

	// Persist a refreshed token so the next run does not refresh again.
	current, err := cfg.TokenSource(ctx, tok).Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed, run 'tasktrack auth': %w", err)
	}
	if current.AccessToken != tok.AccessToken || current.RefreshToken != tok.RefreshToken {
		log.Debugf("Token was refreshed. Saving new token to file.")
		if err := saveToken(tokenFile, current); err != nil {
			log.Warnf("Could not save refreshed token: %v", err)
		}
	}
	return cfg.Client(ctx, current), nil
}

// getTokenFromWeb runs the authorization code flow, capturing the redirect
// on a local web server.
func getTokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	listener, err := net.Listen("tcp", ":"+LocalhostAuthPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on port %s: %w", LocalhostAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				select {
				case errCh <- fmt.Errorf("authorization code not found in redirect URL"):
				default:
				}
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			select {
			case codeCh <- code:
			default:
			}
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	defer server.Shutdown(context.Background())

	go func() {
		log.Debugf("Local server listening on %s for OAuth2 redirect...", cfg.RedirectURL)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- fmt.Errorf("HTTP server error: %w", err):
			default:
			}
		}
	}()

	// AccessTypeOffline makes Google return a refresh token.
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Please open the following URL in your browser to authorize tasktrack:\n%s\n", authURL)
	log.Infof("Waiting for authorization code...")

	select {
	case code := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := cfg.Exchange(exchangeCtx, code)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("authorization timed out. Please try again")
	}
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	log.Infof("Saving authentication token to: %s", path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// GetSheetsService creates an authenticated Google Sheets service.
func GetSheetsService(ctx context.Context) (*sheets.Service, error) {
	client, err := GetClient(ctx, SheetsScopes)
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated client for Sheets API: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google Sheets service: %w", err)
	}
	return srv, nil
}
