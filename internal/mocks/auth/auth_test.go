package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/ports"
)

func TestMockAuthProvider_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()

	url := provider.AuthorizeURL(ports.BeginInput{State: "st-1"})
	assert.Contains(t, url, "https://mock-provider/oauth2/authorize")
	assert.Contains(t, url, "state=st-1")

	id, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "80351110224678912", id.UserID)
	assert.NotEmpty(t, id.AccessToken)
	assert.True(t, id.ExpiresAt.After(time.Now()))
}

func TestMemorySessionStore_RoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := domainauth.Session{ID: "s1", UserID: "u1", AccessToken: "tok"}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.Equal(t, ErrNotFound, err)

	require.Error(t, store.Save(ctx, domainauth.Session{}))
}

func TestMemoryChallengeStore_SingleUse(t *testing.T) {
	store := NewMemoryChallengeStore()
	ctx := context.Background()

	ch := ports.Challenge{ID: "c1", UserID: "u1", Answer: "42"}
	require.NoError(t, store.Save(ctx, ch, time.Minute))

	got, err := store.Take(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "42", got.Answer)

	_, err = store.Take(ctx, "c1")
	assert.Equal(t, ErrNotFound, err)
}
