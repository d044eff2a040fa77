// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"time"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/discord"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	// RedirectURI selects which registered callback the provider should
	// return to (dashboard login vs. verification flow). It must match the
	// URI later passed to Exchange byte for byte.
	RedirectURI string
	State       string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code        string
	RedirectURI string
}

// AuthProvider initiates and completes an authentication flow against the
// identity provider.
type AuthProvider interface {
	// AuthorizeURL builds the provider consent URL for the given flow.
	AuthorizeURL(in BeginInput) string

	// Exchange swaps an authorization code for the authenticated identity,
	// including the bearer token for subsequent provider calls.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// GuildLister fetches the guilds visible to a bearer token.
type GuildLister interface {
	CurrentUserGuilds(ctx context.Context, accessToken string) ([]discord.Guild, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// Challenge is a server-issued verification challenge. The answer is stored
// server-side only; the client receives the ID and the prompt.
type Challenge struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Answer    string    `json:"answer"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChallengeStore persists verification challenges with a bounded lifetime.
type ChallengeStore interface {
	Save(ctx context.Context, ch Challenge, ttl time.Duration) error
	// Take retrieves and consumes a challenge; a challenge can be answered
	// at most once.
	Take(ctx context.Context, id string) (Challenge, error)
}
