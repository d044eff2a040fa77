package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/division-gg/division-api/config"
	"github.com/division-gg/division-api/internal/adapters/devauth"
	"github.com/division-gg/division-api/internal/adapters/discord"
	"github.com/division-gg/division-api/internal/observability/statsd"
	"github.com/division-gg/division-api/internal/ports"
)

// authBackend bundles the two provider-facing ports a backend must serve.
// The Discord client and the dev provider both implement the pair.
type authBackend struct {
	Provider ports.AuthProvider
	Guilds   ports.GuildLister
}

// buildAuthBackend creates the identity backend for the configured auth mode.
func buildAuthBackend(cfg config.AuthConfig, logger *slog.Logger, metrics statsd.Sink) (authBackend, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		if logger != nil {
			logger.Warn("mock auth enabled: no real Discord calls will be made",
				"user_id", cfg.DevAuth.UserID)
		}
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:          cfg.DevAuth.UserID,
			Username:        cfg.DevAuth.Username,
			Email:           cfg.DevAuth.Email,
			SessionDuration: cfg.SessionTTL,
		})
		if err != nil {
			return authBackend{}, fmt.Errorf("create dev auth provider: %w", err)
		}
		return authBackend{Provider: prov, Guilds: prov}, nil

	case config.AuthModeOAuth:
		client, err := discord.NewClient(discord.ClientConfig{
			ClientID:          cfg.Discord.ClientID,
			ClientSecret:      cfg.Discord.ClientSecret,
			Scopes:            cfg.Discord.Scopes,
			APIBaseURL:        cfg.Discord.APIBaseURL,
			Logger:            logger,
			Metrics:           metrics,
			RequestsPerSecond: cfg.Discord.RequestsPerSecond,
		})
		if err != nil {
			return authBackend{}, fmt.Errorf("create discord client: %w", err)
		}
		return authBackend{Provider: client, Guilds: client}, nil

	default:
		return authBackend{}, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
