package service

import (
	"context"
	"fmt"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/discord"
	apperrors "github.com/division-gg/division-api/internal/errors"
	"github.com/division-gg/division-api/internal/ports"
)

// GuildServiceOptions groups dependencies for GuildService.
type GuildServiceOptions struct {
	Lister ports.GuildLister
}

// GuildService lists the guilds an authenticated user can manage.
type GuildService struct {
	lister ports.GuildLister
}

// NewGuildService constructs a new GuildService.
func NewGuildService(opts GuildServiceOptions) *GuildService {
	return &GuildService{lister: opts.Lister}
}

// ListManaged fetches the user's guilds from the provider and returns only
// those the user can manage, in the provider's order. A session without a
// bearer token fails before any outbound call is made.
func (s *GuildService) ListManaged(ctx context.Context, session domainauth.Session) ([]discord.ManagedGuild, error) {
	if !session.HasToken() {
		return nil, apperrors.Unauthorized("authentication required")
	}

	guilds, err := s.lister.CurrentUserGuilds(ctx, session.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("list guilds: %w", err)
	}

	managed := make([]discord.ManagedGuild, 0, len(guilds))
	seen := make(map[string]struct{}, len(guilds))
	for _, g := range guilds {
		if !g.CanManage() {
			continue
		}
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		managed = append(managed, discord.ManagedGuild{Guild: g, CanManage: true})
	}
	return managed, nil
}
