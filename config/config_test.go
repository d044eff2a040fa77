package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse() error = %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want 5432", cfg.Postgres.Port)
	}
	if cfg.Postgres.Name != "division" {
		t.Errorf("Postgres.Name = %q, want %q", cfg.Postgres.Name, "division")
	}
	if cfg.Auth.Mode != AuthModeOAuth {
		t.Errorf("Auth.Mode = %q, want %q", cfg.Auth.Mode, AuthModeOAuth)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("Auth.SessionTTL = %v, want 24h", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.Discord.RequestsPerSecond != 25 {
		t.Errorf("Auth.Discord.RequestsPerSecond = %v, want 25", cfg.Auth.Discord.RequestsPerSecond)
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Error("metrics should be disabled by default")
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("DISCORD_SCOPES", "identify;guilds")
	t.Setenv("DISCORD_REQUESTS_PER_SECOND", "-5")
	t.Setenv("REDIS_URI", "redis.internal:6379")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse() error = %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.HTTP.Addr, ":9090")
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("Postgres.Host = %q, want %q", cfg.Postgres.Host, "db.internal")
	}
	if cfg.Auth.Mode != AuthModeMock {
		t.Errorf("Auth.Mode = %q, want %q", cfg.Auth.Mode, AuthModeMock)
	}
	if cfg.Redis.URI != "redis.internal:6379" {
		t.Errorf("Redis.URI = %q, want %q", cfg.Redis.URI, "redis.internal:6379")
	}
	if cfg.Auth.Discord.RequestsPerSecond != 0 {
		t.Errorf("Auth.Discord.RequestsPerSecond = %v, want 0 (negative values disable the limiter)", cfg.Auth.Discord.RequestsPerSecond)
	}
}

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AuthMode
		wantErr bool
	}{
		{"oauth", "oauth", AuthModeOAuth, false},
		{"mock", "mock", AuthModeMock, false},
		{"uppercase", "OAUTH", AuthModeOAuth, false},
		{"invalid", "saml", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && mode != tt.want {
				t.Errorf("UnmarshalText(%q) = %q, want %q", tt.input, mode, tt.want)
			}
		})
	}
}

func TestAuthConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr bool
	}{
		{
			name: "oauth with credentials",
			cfg: AuthConfig{
				Mode:    AuthModeOAuth,
				Discord: DiscordConfig{ClientID: "id", ClientSecret: "secret"},
			},
		},
		{
			name:    "oauth missing client id",
			cfg:     AuthConfig{Mode: AuthModeOAuth, Discord: DiscordConfig{ClientSecret: "secret"}},
			wantErr: true,
		},
		{
			name:    "oauth missing client secret",
			cfg:     AuthConfig{Mode: AuthModeOAuth, Discord: DiscordConfig{ClientID: "id"}},
			wantErr: true,
		},
		{
			name: "mock needs no credentials",
			cfg:  AuthConfig{Mode: AuthModeMock},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPConfigSanitize(t *testing.T) {
	cfg := HTTPConfig{Addr: "", BaseURL: " https://division.gg/ "}
	cfg.Sanitize()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.BaseURL != "https://division.gg" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://division.gg")
	}
}

func TestObservabilityMetricsSanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	cfg.Sanitize()

	if cfg.Enabled {
		t.Error("metrics with a blank statsd address should be disabled")
	}
	if cfg.IsEnabled() {
		t.Error("IsEnabled() should be false after sanitize")
	}
}
