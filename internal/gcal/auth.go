package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/nmendoza/tombacal/internal/config"
	"github.com/nmendoza/tombacal/internal/logger"
)

// NewService builds an authenticated Google Calendar service using the flow
// selected in the configuration. A missing credential file is a startup
// error, not something to degrade around.
func NewService(ctx context.Context, cfg *config.Config) (*calendar.Service, error) {
	switch cfg.AuthMode {
	case config.AuthService:
		return serviceAccountService(ctx, cfg.ServiceAccountFile)
	default:
		return oauthService(ctx, cfg.CredentialsFile, cfg.TokenFile)
	}
}

// serviceAccountService authenticates non-interactively from a service
// account key file.
func serviceAccountService(ctx context.Context, keyFile string) (*calendar.Service, error) {
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("reading service account file %s: %w", keyFile, err)
	}

	conf, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return svc, nil
}

// oauthService authenticates with the installed-app consent flow, caching the
// resulting token next to the credentials so later runs are non-interactive.
// Token refresh is handled by the oauth2 token source.
func oauthService(ctx context.Context, credentialsFile, tokenFile string) (*calendar.Service, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file %s: %w", credentialsFile, err)
	}

	conf, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = tokenFromConsent(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			logger.Warn("Could not cache OAuth token", logger.Fields{
				"token_file": tokenFile,
			})
		}
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return svc, nil
}

// tokenFromFile loads a cached token.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	return tok, nil
}

// tokenFromConsent walks the user through the browser consent flow and
// exchanges the pasted authorization code.
func tokenFromConsent(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%v\n> ", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return tok, nil
}

// saveToken caches the token for later runs.
func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating token file: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}
