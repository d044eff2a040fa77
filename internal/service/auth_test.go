package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	mocks "github.com/division-gg/division-api/internal/mocks/auth"
	"github.com/division-gg/division-api/internal/ports"
)

// mockSessionStore is a test helper for testing session store errors.
type mockSessionStore struct {
	saveFunc   func(context.Context, domainauth.Session) error
	getFunc    func(context.Context, string) (domainauth.Session, error)
	deleteFunc func(context.Context, string) error
}

func (m *mockSessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, sess)
	}
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return domainauth.Session{}, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func TestAuthService_BeginLogin(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: mocks.NewMemorySessionStore(),
	})

	result, err := service.BeginLogin(context.Background(), "http://localhost:8080/auth/callback")
	require.NoError(t, err)
	assert.Contains(t, result.AuthURL, "https://mock-provider/oauth2/authorize")
	assert.NotEmpty(t, result.State)
	assert.Contains(t, result.AuthURL, result.State)

	// State is fresh per login.
	again, err := service.BeginLogin(context.Background(), "http://localhost:8080/auth/callback")
	require.NoError(t, err)
	assert.NotEqual(t, result.State, again.State)
}

func TestAuthService_BeginLogin_EmptyRedirectURI(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: mocks.NewMemorySessionStore(),
	})

	result, err := service.BeginLogin(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "redirect URI is required")
}

func TestAuthService_CompleteLogin_Success(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: sessions,
	})

	result, err := service.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:        "auth-code",
		RedirectURI: "http://localhost:8080/auth/callback",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, "80351110224678912", result.Session.UserID)
	assert.Equal(t, "nelly", result.Session.Username)
	assert.True(t, result.Session.HasToken())

	// Session is retrievable afterwards.
	stored, err := sessions.Get(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.AccessToken, stored.AccessToken)
}

func TestAuthService_CompleteLogin_MissingCode(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: mocks.NewMemorySessionStore(),
	})

	_, err := service.CompleteLogin(context.Background(), CompleteLoginInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization code is required")
}

func TestAuthService_CompleteLogin_ExchangeError(t *testing.T) {
	provider := &mocks.MockAuthProvider{
		ExchangeFunc: func(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
			return domainauth.Identity{}, errors.New("provider unavailable")
		},
	}
	service := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: mocks.NewMemorySessionStore(),
	})

	_, err := service.CompleteLogin(context.Background(), CompleteLoginInput{Code: "auth-code"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange authorization code")
}

func TestAuthService_CompleteLogin_SessionLifetimeCapped(t *testing.T) {
	provider := mocks.NewMockAuthProvider()
	provider.DefaultUser.ExpiresAt = time.Now().Add(30 * 24 * time.Hour)
	provider.ExchangeFunc = func(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
		return provider.DefaultUser, nil
	}

	service := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: mocks.NewMemorySessionStore(),
	})

	result, err := service.CompleteLogin(context.Background(), CompleteLoginInput{Code: "auth-code"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(defaultSessionTTL), result.Session.ExpiresAt, time.Minute)
}

func TestAuthService_CompleteLogin_ConfiguredSessionTTL(t *testing.T) {
	provider := mocks.NewMockAuthProvider()
	provider.DefaultUser.ExpiresAt = time.Now().Add(30 * 24 * time.Hour)
	provider.ExchangeFunc = func(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
		return provider.DefaultUser, nil
	}

	service := NewAuthService(AuthServiceOptions{
		Provider:   provider,
		Sessions:   mocks.NewMemorySessionStore(),
		SessionTTL: 2 * time.Hour,
	})

	result, err := service.CompleteLogin(context.Background(), CompleteLoginInput{Code: "auth-code"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), result.Session.ExpiresAt, time.Minute)
}

func TestAuthService_CompleteLogin_SaveError(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: &mockSessionStore{
			saveFunc: func(_ context.Context, _ domainauth.Session) error {
				return errors.New("redis down")
			},
		},
	})

	_, err := service.CompleteLogin(context.Background(), CompleteLoginInput{Code: "auth-code"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

func TestAuthService_GetSession(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: sessions,
	})

	sess := domainauth.Session{
		ID:          "s1",
		UserID:      "u1",
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Save(context.Background(), sess))

	got, err := service.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	_, err = service.GetSession(context.Background(), "")
	require.Error(t, err)

	_, err = service.GetSession(context.Background(), "missing")
	require.Error(t, err)
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	deleted := false
	store := &mockSessionStore{
		getFunc: func(_ context.Context, _ string) (domainauth.Session, error) {
			return domainauth.Session{ID: "s1", ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
		deleteFunc: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: store,
	})

	_, err := service.GetSession(context.Background(), "s1")
	require.ErrorIs(t, err, errSessionExpired)
	assert.True(t, deleted)
}

func TestAuthService_Logout(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: sessions,
	})

	sess := domainauth.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Save(context.Background(), sess))

	require.NoError(t, service.Logout(context.Background(), "s1"))
	_, err := sessions.Get(context.Background(), "s1")
	assert.Error(t, err)

	// Logging out an unknown or empty session is a no-op.
	require.NoError(t, service.Logout(context.Background(), "missing"))
	require.NoError(t, service.Logout(context.Background(), ""))
}
