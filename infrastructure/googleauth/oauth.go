package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultCallbackAddr is where the local OAuth redirect listener binds
const DefaultCallbackAddr = "localhost:8085"

// Config holds the configuration for OAuth 2.0 user authentication
type Config struct {
	CredentialsFile string   // Path to OAuth client credentials JSON
	TokenFile       string   // Path to store/load token
	Scopes          []string // Google API scopes requested together
	CallbackAddr    string   // host:port of the redirect listener
	Output          io.Writer
}

// HTTPClient returns an authorized client for the configured scopes.
// A saved token is reused and refreshed; otherwise the browser flow runs once
// and the resulting token is saved for the next run.
func HTTPClient(ctx context.Context, cfg Config) (*http.Client, error) {
	oauthCfg, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}

	token, err := getToken(ctx, oauthCfg, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to get OAuth token: %w", err)
	}

	return oauthCfg.Client(ctx, token), nil
}

func oauthConfig(cfg Config) (*oauth2.Config, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read OAuth credentials file: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, cfg.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse OAuth credentials: %w", err)
	}
	return oauthCfg, nil
}

// getToken retrieves a token from file or initiates the OAuth flow
func getToken(ctx context.Context, oauthCfg *oauth2.Config, cfg Config) (*oauth2.Token, error) {
	if token, err := loadToken(cfg.TokenFile); err == nil {
		fresh, err := oauthCfg.TokenSource(ctx, token).Token()
		if err == nil {
			if fresh.AccessToken != token.AccessToken {
				_ = saveToken(cfg.TokenFile, fresh)
			}
			return fresh, nil
		}
	}

	return tokenFromWeb(ctx, oauthCfg, cfg)
}

func loadToken(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(file string, token *oauth2.Token) error {
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

// tokenFromWeb runs the installed-app flow through a local redirect listener
func tokenFromWeb(ctx context.Context, oauthCfg *oauth2.Config, cfg Config) (*oauth2.Token, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	addr := cfg.CallbackAddr
	if addr == "" {
		addr = DefaultCallbackAddr
	}
	oauthCfg.RedirectURL = "http://" + addr + "/callback"

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("unable to start OAuth callback listener: %w", err)
	}

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- errors.New("no code in callback")
			fmt.Fprintf(w, "Error: No authorization code received")
			return
		}
		codeChan <- code
		fmt.Fprintf(w, "<html><body><h1>Authorization successful!</h1><p>You can close this window and return to the terminal.</p></body></html>")
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(out, "\nOpening browser for Google authentication...\n")
	fmt.Fprintf(out, "If the browser doesn't open, please visit this URL:\n\n%s\n\n", authURL)
	openBrowser(authURL)

	var code string
	select {
	case code = <-codeChan:
	case err := <-errChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange auth code: %w", err)
	}

	if err := saveToken(cfg.TokenFile, token); err != nil {
		fmt.Fprintf(out, "Warning: couldn't save token: %v\n", err)
	}
	fmt.Fprintln(out, "Authentication successful!")
	return token, nil
}

// openBrowser opens a URL in the default browser
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err == nil {
			cmd = exec.Command("xdg-open", url)
		} else if _, err := exec.LookPath("wslview"); err == nil {
			cmd = exec.Command("wslview", url)
		}
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}

	if cmd != nil {
		_ = cmd.Start()
	}
}
