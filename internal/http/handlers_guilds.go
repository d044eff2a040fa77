package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/discord"
	apperrors "github.com/division-gg/division-api/internal/errors"
	obserrors "github.com/division-gg/division-api/internal/observability/errors"
)

// GuildServiceInterface defines the interface for guild listing operations.
type GuildServiceInterface interface {
	ListManaged(ctx context.Context, session domainauth.Session) ([]discord.ManagedGuild, error)
}

// GuildHandlers provides HTTP handlers for the server picker.
type GuildHandlers struct {
	Svc    GuildServiceInterface
	Logger *slog.Logger
}

func (h *GuildHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// ListUserServers returns the guilds the current user can manage.
// GET /api/getUserServers. Requires an authenticated session.
func (h *GuildHandlers) ListUserServers(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	guilds, err := h.Svc.ListManaged(r.Context(), *session)
	if err != nil {
		if apperrors.IsUpstream(err) {
			// Status mirrors the provider; the body never does.
			h.logger().WarnContext(r.Context(), "guild listing rejected upstream",
				"status", apperrors.UpstreamStatusOf(err), "error", err)
		} else {
			h.logger().ErrorContext(r.Context(), "guild listing failed",
				"error", err, "error_type", obserrors.Classify(err))
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"servers": guilds,
	})
}
