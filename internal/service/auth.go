package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/ports"
)

// defaultSessionTTL caps how long a session may outlive login even when the
// provider grants a longer-lived token.
const defaultSessionTTL = 24 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	// SessionTTL caps the lifetime of issued sessions; defaults to 24h
	// when zero.
	SessionTTL time.Duration
}

// AuthService orchestrates authentication flows by coordinating the Discord
// provider and session persistence.
type AuthService struct {
	provider   ports.AuthProvider
	sessions   ports.SessionStore
	sessionTTL time.Duration
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		sessionTTL: ttl,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
}

// BeginLogin initiates an authentication flow and returns the provider
// consent URL along with the state the callback must echo.
func (s *AuthService) BeginLogin(_ context.Context, redirectURI string) (*BeginLoginResult, error) {
	if redirectURI == "" {
		return nil, errors.New("redirect URI is required")
	}

	state := uuid.NewString()
	authURL := s.provider.AuthorizeURL(ports.BeginInput{
		RedirectURI: redirectURI,
		State:       state,
	})
	return &BeginLoginResult{AuthURL: authURL, State: state}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code        string
	RedirectURI string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session  domainauth.Session
	Identity domainauth.Identity
}

// CompleteLogin completes an authentication flow by exchanging the code for
// an identity and persisting a session that carries the bearer token.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:        input.Code,
		RedirectURI: input.RedirectURI,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	expiresAt := identity.ExpiresAt
	if limit := time.Now().Add(s.sessionTTL); expiresAt.IsZero() || expiresAt.After(limit) {
		expiresAt = limit
	}

	session := domainauth.Session{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		Username:    identity.Username,
		GlobalName:  identity.GlobalName,
		Email:       identity.Email,
		AvatarHash:  identity.AvatarHash,
		AccessToken: identity.AccessToken,
		ExpiresAt:   expiresAt,
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{Session: session, Identity: identity}, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
