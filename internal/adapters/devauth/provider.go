// Package devauth provides a config-driven AuthProvider for local development.
package devauth

import (
	"context"
	"errors"
	"net/url"
	"time"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/discord"
	"github.com/division-gg/division-api/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	UserID          string
	Username        string
	Email           string
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.AuthProvider and ports.GuildLister for local
// development. It short-circuits the OAuth flow by redirecting straight back
// to our own callback, and Exchange ignores the code and returns the
// configured identity with a static dev token. CurrentUserGuilds returns a
// small fixed roster so the dashboard has something to render.
type Provider struct {
	identity        domainauth.Identity
	sessionDuration time.Duration
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Username == "" {
		return nil, errors.New("dev auth: Username is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{
		identity: domainauth.Identity{
			UserID:      cfg.UserID,
			Username:    cfg.Username,
			GlobalName:  cfg.Username,
			Email:       cfg.Email,
			AccessToken: "dev-token",
			ExpiresAt:   time.Now().Add(dur),
		},
		sessionDuration: dur,
	}, nil
}

// AuthorizeURL returns a local callback URL that skips the provider entirely.
// The standard handler expects GET /auth/callback?code=...&state=...
func (p *Provider) AuthorizeURL(in ports.BeginInput) string {
	return "/auth/callback?code=dev&state=" + url.QueryEscape(in.State)
}

// Exchange ignores the provided code (state validation is handled by the
// handler) and returns the dev identity with a fresh expiry. The receiver is
// shared across concurrent logins and is never mutated.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	id := p.identity
	id.ExpiresAt = time.Now().Add(p.sessionDuration)
	return id, nil
}

// CurrentUserGuilds returns a fixed roster: one guild the dev user manages
// and one they do not.
func (p *Provider) CurrentUserGuilds(_ context.Context, accessToken string) ([]discord.Guild, error) {
	if accessToken == "" {
		return nil, errors.New("dev auth: access token is required")
	}
	return []discord.Guild{
		{
			ID:          "100000000000000001",
			Name:        "Dev Managed Guild",
			Owner:       true,
			Permissions: discord.PermissionAdministrator | discord.PermissionManageGuild,
		},
		{
			ID:          "100000000000000002",
			Name:        "Dev Member Guild",
			Permissions: 0,
		},
	}, nil
}
