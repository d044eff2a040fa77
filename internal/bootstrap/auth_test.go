package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/division-gg/division-api/config"
)

func TestBuildAuthBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		auth    config.AuthConfig
		wantErr bool
	}{
		{
			name: "mock mode",
			auth: config.AuthConfig{
				Mode: config.AuthModeMock,
				DevAuth: config.DevAuthConfig{
					UserID:   "100000000000000000",
					Username: "dev-user",
					Email:    "dev@example.com",
				},
			},
		},
		{
			name: "oauth mode",
			auth: config.AuthConfig{
				Mode: config.AuthModeOAuth,
				Discord: config.DiscordConfig{
					ClientID:     "client-id",
					ClientSecret: "client-secret",
					RedirectURL:  "https://division.gg/auth/callback",
					Scopes:       []string{"identify", "email", "guilds"},
				},
			},
		},
		{
			name:    "oauth mode without client id",
			auth:    config.AuthConfig{Mode: config.AuthModeOAuth},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			auth:    config.AuthConfig{Mode: "ldap"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := buildAuthBackend(tt.auth, logger, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildAuthBackend() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if backend.Provider == nil {
				t.Error("backend.Provider is nil")
			}
			if backend.Guilds == nil {
				t.Error("backend.Guilds is nil")
			}
		})
	}
}
