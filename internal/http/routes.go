package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          AuthServiceInterface
	Guilds        GuildServiceInterface
	Email         EmailServiceInterface
	Verifications VerificationServiceInterface
	// RedirectURI is the registered OAuth redirect URI.
	RedirectURI  string
	CookieDomain string
	IsDev        bool         // Development mode flag: enables debug-only routes
	Logger       *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:           services.Auth,
		Verifications: services.Verifications,
		RedirectURI:   services.RedirectURI,
		CookieDomain:  services.CookieDomain,
		Logger:        services.Logger,
	}
	guildHandlers := &GuildHandlers{Svc: services.Guilds, Logger: services.Logger}
	emailHandlers := &EmailHandlers{Svc: services.Email, Logger: services.Logger}
	verifyHandlers := &VerifyHandlers{Svc: services.Verifications, Logger: services.Logger}

	requireAuth := RequireAuth(services.Auth)

	// Browser OAuth flow
	mux.HandleFunc("GET /auth/login", authHandlers.Login)
	mux.HandleFunc("GET /auth/callback", authHandlers.Callback)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/status", authHandlers.Status)

	// SPA endpoints
	mux.HandleFunc("POST /api/discord-callback", authHandlers.DiscordCallback)
	mux.Handle("GET /api/getUserServers", requireAuth(http.HandlerFunc(guildHandlers.ListUserServers)))

	// Landing page email capture
	mux.HandleFunc("POST /api/save-email", emailHandlers.SaveEmail)
	if services.IsDev {
		// Debug listing, never registered in production.
		mux.HandleFunc("GET /api/save-email", emailHandlers.ListEmails)
	}

	// Member verification
	mux.HandleFunc("POST /api/verify", verifyHandlers.CompleteChallenge)
	mux.Handle("POST /api/verify/challenge", requireAuth(http.HandlerFunc(verifyHandlers.IssueChallenge)))
	mux.Handle("GET /api/verify/status", requireAuth(http.HandlerFunc(verifyHandlers.Status)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}
