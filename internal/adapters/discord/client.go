// Package discord implements the AuthProvider and GuildLister ports against
// the Discord REST API. Discord speaks plain OAuth2: no discovery document
// and no ID tokens, so the exchange goes through golang.org/x/oauth2 with
// statically configured endpoints.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/division-gg/division-api/internal/errors"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	domaindiscord "github.com/division-gg/division-api/internal/domain/discord"
	"github.com/division-gg/division-api/internal/observability/statsd"
	"github.com/division-gg/division-api/internal/ports"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultAPIBaseURL = "https://discord.com/api/v10"
	defaultTimeout    = 10 * time.Second

	// Transient network failures on idempotent GETs are retried a bounded
	// number of times. The token exchange is never retried: authorization
	// codes are single-use.
	maxGetRetries = 2

	// sensible ceiling for error bodies we read for logging
	maxErrorBody = 4 << 10
)

// ClientConfig holds configuration for the Discord API client.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	Scopes       []string

	// APIBaseURL overrides the Discord REST base URL (tests point this at
	// an httptest server). Authorize/token endpoints derive from it.
	APIBaseURL string

	HTTPClient *http.Client // optional, defaults to a 10s-timeout client
	Logger     *slog.Logger

	// Metrics, when set, receives a count and a timing per outbound call.
	Metrics statsd.Sink

	// RequestsPerSecond caps outbound calls; zero disables the limiter.
	RequestsPerSecond float64
}

// Client talks to the Discord REST API on behalf of a user token.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	oauth      *oauth2.Config
	httpClient *http.Client
	logger     *slog.Logger
	metrics    statsd.Sink
	limiter    *rate.Limiter
}

var (
	_ ports.AuthProvider = (*Client)(nil)
	_ ports.GuildLister  = (*Client)(nil)
)

// NewClient builds a Discord API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}

	baseURL := strings.TrimSuffix(cfg.APIBaseURL, "/")
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"identify", "email", "guilds"}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL: baseURL,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   baseURL + "/oauth2/authorize",
				TokenURL:  baseURL + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
		logger:     logger,
		metrics:    cfg.Metrics,
		limiter:    limiter,
	}, nil
}

// AuthorizeURL builds the provider consent URL for the given flow.
func (c *Client) AuthorizeURL(in ports.BeginInput) string {
	return c.oauth.AuthCodeURL(in.State,
		oauth2.SetAuthURLParam("redirect_uri", in.RedirectURI),
		oauth2.SetAuthURLParam("prompt", "none"),
	)
}

// Exchange swaps an authorization code for an access token and resolves the
// current user. The redirect URI must match the one used to obtain the code
// byte for byte; the provider enforces this.
func (c *Client) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if in.Code == "" {
		return domainauth.Identity{}, apperrors.Validation("authorization code is required")
	}

	if err := c.wait(ctx); err != nil {
		return domainauth.Identity{}, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	start := time.Now()
	token, err := c.oauth.Exchange(ctx, in.Code,
		oauth2.SetAuthURLParam("redirect_uri", in.RedirectURI),
	)
	if err != nil {
		c.observe("/oauth2/token", 0, time.Since(start))
		return domainauth.Identity{}, c.classifyExchangeErr(ctx, err)
	}
	c.observe("/oauth2/token", http.StatusOK, time.Since(start))

	user, err := c.CurrentUser(ctx, token.AccessToken)
	if err != nil {
		return domainauth.Identity{}, err
	}

	expiresAt := token.Expiry
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Hour)
	}

	return domainauth.Identity{
		UserID:      user.ID,
		Username:    user.Username,
		GlobalName:  user.GlobalName,
		Email:       user.Email,
		AvatarHash:  user.Avatar,
		AccessToken: token.AccessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// CurrentUser fetches /users/@me with the given bearer token.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (domaindiscord.User, error) {
	var user domaindiscord.User
	if err := c.getJSON(ctx, "/users/@me", accessToken, &user); err != nil {
		return domaindiscord.User{}, err
	}
	return user, nil
}

// CurrentUserGuilds fetches /users/@me/guilds with the given bearer token.
// The provider's ordering is preserved.
func (c *Client) CurrentUserGuilds(ctx context.Context, accessToken string) ([]domaindiscord.Guild, error) {
	var guilds []domaindiscord.Guild
	if err := c.getJSON(ctx, "/users/@me/guilds", accessToken, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

// getJSON performs an authenticated GET with bounded retries on transient
// network failure. Provider 4xx/5xx responses are never retried.
func (c *Client) getJSON(ctx context.Context, path, accessToken string, dst any) error {
	if accessToken == "" {
		return apperrors.Unauthorized("access token is required")
	}

	var lastErr error
	for attempt := 0; attempt <= maxGetRetries; attempt++ {
		if err := c.wait(ctx); err != nil {
			return err
		}

		err := c.doGet(ctx, path, accessToken, dst)
		if err == nil {
			return nil
		}

		// Only transport-level failures are retryable.
		var urlErr *url.Error
		if !errors.As(err, &urlErr) || ctx.Err() != nil {
			return err
		}
		lastErr = err
		c.logger.WarnContext(ctx, "discord request failed, retrying",
			"path", path,
			"attempt", attempt+1,
			"error", err,
		)
	}
	return apperrors.Wrap(lastErr, apperrors.ErrCodeUpstream, "provider request failed")
}

func (c *Client) doGet(ctx context.Context, path, accessToken string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build provider request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(path, 0, time.Since(start))
		return err
	}
	c.observe(path, resp.StatusCode, time.Since(start))
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Provider error bodies can include sensitive debug detail; they go
		// to the server log only, never to the client.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.ErrorContext(ctx, "discord request rejected",
			"path", path,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return apperrors.Upstream(resp.StatusCode, "provider request failed",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode provider response")
	}
	return nil
}

// classifyExchangeErr maps token-endpoint failures to the error taxonomy,
// logging the raw provider response server-side only.
func (c *Client) classifyExchangeErr(ctx context.Context, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := http.StatusBadRequest
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		c.logger.ErrorContext(ctx, "token exchange failed",
			"status", status,
			"body", string(retrieveErr.Body),
		)
		return apperrors.Upstream(status, "token exchange failed",
			fmt.Errorf("status %d", status))
	}
	return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "token exchange failed")
}

// observe emits one count and one timing per outbound call. A zero status
// means the request never produced a response.
func (c *Client) observe(path string, status int, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	tags := map[string]string{
		"path":   path,
		"status": strconv.Itoa(status),
	}
	c.metrics.Count("discord.requests", 1, tags)
	c.metrics.Timing("discord.request_duration", elapsed, tags)
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "rate limit wait")
	}
	return nil
}
