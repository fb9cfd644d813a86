package gcal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/nmendoza/tombacal/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := saveToken(path, tok); err != nil {
		t.Fatalf("saveToken error: %v", err)
	}

	loaded, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("tokenFromFile error: %v", err)
	}

	if loaded.AccessToken != tok.AccessToken || loaded.RefreshToken != tok.RefreshToken {
		t.Errorf("loaded token = %+v, want %+v", loaded, tok)
	}
	if !loaded.Expiry.Equal(tok.Expiry) {
		t.Errorf("Expiry = %v, want %v", loaded.Expiry, tok.Expiry)
	}
}

func TestTokenFromFileMissing(t *testing.T) {
	if _, err := tokenFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing token file")
	}
}

func TestNewServiceMissingCredentials(t *testing.T) {
	tmp := t.TempDir()
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "oauth without client secrets",
			cfg: &config.Config{
				AuthMode:        config.AuthOAuth,
				CredentialsFile: filepath.Join(tmp, "missing-credentials.json"),
				TokenFile:       filepath.Join(tmp, "missing-token.json"),
			},
		},
		{
			name: "service account without key file",
			cfg: &config.Config{
				AuthMode:           config.AuthService,
				ServiceAccountFile: filepath.Join(tmp, "missing-key.json"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewService(context.Background(), tt.cfg); err == nil {
				t.Error("expected startup error for missing credential file")
			}
		})
	}
}
