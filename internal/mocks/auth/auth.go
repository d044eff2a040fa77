// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/discord"
	"github.com/division-gg/division-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider   = (*MockAuthProvider)(nil)
	_ ports.GuildLister    = (*MockGuildLister)(nil)
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.ChallengeStore = (*MemoryChallengeStore)(nil)
)

// MockAuthProvider simulates the Discord OAuth provider for tests.
type MockAuthProvider struct {
	AuthorizeURLFunc func(in ports.BeginInput) string
	ExchangeFunc     func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	DefaultUser domainauth.Identity
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-provider/oauth2/authorize",
		DefaultUser: domainauth.Identity{
			UserID:      "80351110224678912",
			Username:    "nelly",
			GlobalName:  "Nelly",
			Email:       "nelly@example.com",
			AccessToken: "mock-access-token",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) AuthorizeURL(in ports.BeginInput) string {
	if m.AuthorizeURLFunc != nil {
		return m.AuthorizeURLFunc(in)
	}
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-provider/oauth2/authorize"
	}
	return fmt.Sprintf("%s?state=%s", authURL, in.State)
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	// Return a copy of the default user with a fresh expiration time
	user := m.DefaultUser
	if user.UserID == "" {
		user = domainauth.Identity{
			UserID:      "80351110224678912",
			Username:    "nelly",
			AccessToken: "mock-access-token",
		}
	}
	user.ExpiresAt = time.Now().Add(time.Hour)

	return user, nil
}

// MockGuildLister serves a fixed guild roster, or whatever GuildsFunc says.
type MockGuildLister struct {
	GuildsFunc func(ctx context.Context, accessToken string) ([]discord.Guild, error)
	Guilds     []discord.Guild
	Calls      int
}

func (m *MockGuildLister) CurrentUserGuilds(ctx context.Context, accessToken string) ([]discord.Guild, error) {
	m.Calls++
	if m.GuildsFunc != nil {
		return m.GuildsFunc(ctx, accessToken)
	}
	return append([]discord.Guild(nil), m.Guilds...), nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// MemoryChallengeStore is an in-memory challenge store for unit tests.
// Take consumes, matching the single-use contract.
type MemoryChallengeStore struct {
	challenges map[string]ports.Challenge
}

// NewMemoryChallengeStore creates a new in-memory challenge store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		challenges: make(map[string]ports.Challenge),
	}
}

func (m *MemoryChallengeStore) Save(_ context.Context, ch ports.Challenge, ttl time.Duration) error {
	if ch.ID == "" {
		return errors.New("challenge ID cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("challenge TTL must be positive")
	}
	m.challenges[ch.ID] = ch
	return nil
}

func (m *MemoryChallengeStore) Take(_ context.Context, id string) (ports.Challenge, error) {
	ch, ok := m.challenges[id]
	if !ok {
		return ports.Challenge{}, ErrNotFound
	}
	delete(m.challenges, id)
	return ch, nil
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}
