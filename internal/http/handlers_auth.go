package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	apperrors "github.com/division-gg/division-api/internal/errors"
	"github.com/division-gg/division-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURI string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

const (
	sessionCookieName = "session_id"
	stateCookieName   = "oauth_state"
	// verifyFlowCookieName marks a login that was started from the bot's
	// verification link rather than the dashboard.
	verifyFlowCookieName    = "verification_flow"
	postLoginRedirectCookie = "post_login_redirect"
)

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc           AuthServiceInterface
	Verifications VerificationServiceInterface
	// RedirectURI is the registered OAuth redirect URI sent on both the
	// authorize and token-exchange legs. The provider rejects the exchange
	// if the two differ even by a trailing slash.
	RedirectURI  string
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the login initiation endpoint.
// GET /auth/login?redirect_uri=<optional_redirect>&flow=<optional_flow>.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	// Post-login destination on this site, not the OAuth redirect URI.
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), h.RedirectURI)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
		return
	}

	h.setOAuthCookies(w, r, oauthCookieParams{
		State:            result.State,
		RedirectURI:      redirectURI,
		VerificationFlow: r.URL.Query().Get("flow") == "verification",
	})

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback handles the OAuth callback endpoint.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_code",
			Err:     errors.New("authorization code is required"),
		})
		return
	}
	if state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_state",
			Err:     errors.New("state parameter is required"),
		})
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}

	result, err := h.completeLogin(r.Context(), code)
	if err != nil {
		h.writeExchangeError(w, r, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)
	h.clearCookie(w, r, stateCookieName)

	// Logins started from the bot's verification link advance the
	// verification flow and hand the challenge back as JSON.
	if flowCookie, cookieErr := r.Cookie(verifyFlowCookieName); cookieErr == nil && flowCookie.Value == "1" {
		h.clearCookie(w, r, verifyFlowCookieName)
		h.completeVerificationAuthorization(w, r, result.Identity)
		return
	}

	http.Redirect(w, r, h.getPostLoginRedirect(w, r), http.StatusFound)
}

// DiscordCallback handles the SPA's code hand-off endpoint.
// POST /api/discord-callback with body {"code": "<authorization code>"}.
func (h *AuthHandlers) DiscordCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_code",
			Err:     errors.New("authorization code is required"),
		})
		return
	}

	result, err := h.completeLogin(r.Context(), req.Code)
	if err != nil {
		h.writeExchangeError(w, r, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)
	WriteJSON(w, http.StatusOK, identityPayload(result.Identity))
}

func (h *AuthHandlers) completeLogin(ctx context.Context, code string) (*service.CompleteLoginResult, error) {
	return h.Svc.CompleteLogin(ctx, service.CompleteLoginInput{
		Code:        code,
		RedirectURI: h.RedirectURI,
	})
}

// writeExchangeError maps a failed code exchange to a client response.
// Provider response bodies stay in the server log; the client only ever
// sees a generic message.
func (h *AuthHandlers) writeExchangeError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsUpstream(err) {
		h.logger().WarnContext(r.Context(), "code exchange rejected", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "exchange_failed",
			Err:     errors.New("authorization code exchange failed"),
		})
		return
	}
	h.logger().ErrorContext(r.Context(), "login completion failed", "error", err)
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "login_completion_failed",
		Err:     errors.New("login could not be completed"),
	})
}

func (h *AuthHandlers) completeVerificationAuthorization(w http.ResponseWriter, r *http.Request, identity domainauth.Identity) {
	if h.Verifications == nil {
		WriteAppError(w, errors.New("verification flow is not configured"))
		return
	}
	challenge, err := h.Verifications.CompleteAuthorization(r.Context(), identity)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, challenge)
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(sessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, sessionCookieName)

	redirectURI := r.FormValue("redirect_uri")
	if redirectURI == "" {
		redirectURI = r.URL.Query().Get("redirect_uri")
	}
	redirectURI = safeRedirectPath(redirectURI)

	isAJAX := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
	if isAJAX {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": redirectURI,
		})
		return
	}

	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"authenticated": false,
		})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie
		h.clearCookie(w, r, sessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"authenticated": false,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user": map[string]interface{}{
			"id":          session.UserID,
			"username":    session.Username,
			"global_name": session.GlobalName,
			"email":       session.Email,
			"avatar":      session.AvatarHash,
		},
		"expires_at": session.ExpiresAt,
	})
}

func identityPayload(id domainauth.Identity) map[string]interface{} {
	return map[string]interface{}{
		"id":          id.UserID,
		"username":    id.Username,
		"global_name": id.GlobalName,
		"email":       id.Email,
		"avatar":      id.AvatarHash,
	}
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// oauthCookieParams groups values stored for the duration of an OAuth round trip.
type oauthCookieParams struct {
	State            string
	RedirectURI      string
	VerificationFlow bool
}

// setOAuthCookies stores the state, the post-login redirect, and the flow
// marker in short-lived secure cookies.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	set := func(name, value string) {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			HttpOnly: true,
			Secure:   isSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   600, // 10 minutes
		})
	}

	set(stateCookieName, p.State)
	set(postLoginRedirectCookie, p.RedirectURI)
	if p.VerificationFlow {
		set(verifyFlowCookieName, "1")
	}
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// getPostLoginRedirect returns the post-login redirect URL and clears the cookie.
func (h *AuthHandlers) getPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if redirectCookie, err := r.Cookie(postLoginRedirectCookie); err == nil {
		redirectURI = safeRedirectPath(redirectCookie.Value)
		h.clearCookie(w, r, postLoginRedirectCookie)
	}
	return redirectURI
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
