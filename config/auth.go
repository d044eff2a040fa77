package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses the Discord OAuth2 code flow for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// DiscordConfig contains Discord OAuth2 application credentials and endpoints.
type DiscordConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	// RedirectURL must match a redirect URI registered on the Discord
	// application byte for byte, or the token exchange is rejected.
	RedirectURL string   `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/callback"`
	Scopes      []string `env:"SCOPES"       envDefault:"identify;email;guilds" envSeparator:";"`
	// APIBaseURL overrides the Discord REST base URL. Tests point this at a
	// local stub; production leaves it empty.
	APIBaseURL string `env:"API_BASE_URL"`
	// RequestsPerSecond caps outbound Discord calls. Discord's global limit
	// is 50 requests per second per bot; zero disables the limiter.
	RequestsPerSecond float64 `env:"REQUESTS_PER_SECOND" envDefault:"25"`
}

// DevAuthConfig controls the mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID   string `env:"USER_ID"  envDefault:"100000000000000000"`
	Username string `env:"USERNAME" envDefault:"dev-user"`
	Email    string `env:"EMAIL"    envDefault:"dev@example.com"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Discord configuration (used when Mode=oauth).
	Discord DiscordConfig `envPrefix:"DISCORD_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL caps the lifetime of issued sessions.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.Discord.RequestsPerSecond < 0 {
		a.Discord.RequestsPerSecond = 0
	}
	for i, s := range a.Discord.Scopes {
		a.Discord.Scopes[i] = strings.TrimSpace(s)
	}
}

// Validate checks that the selected mode has the configuration it needs.
// Credentials are only required in oauth mode so local mock setups can run
// without a registered Discord application.
func (a *AuthConfig) Validate() error {
	if a.Mode != AuthModeOAuth {
		return nil
	}
	if a.Discord.ClientID == "" {
		return fmt.Errorf("DISCORD_CLIENT_ID is required when AUTH_MODE=oauth")
	}
	if a.Discord.ClientSecret == "" {
		return fmt.Errorf("DISCORD_CLIENT_SECRET is required when AUTH_MODE=oauth")
	}
	return nil
}
