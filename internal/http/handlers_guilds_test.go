package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/discord"
	apperrors "github.com/division-gg/division-api/internal/errors"
)

// mockGuildService is a test double for service.GuildService.
type mockGuildService struct {
	listManagedFunc func(ctx context.Context, session domainauth.Session) ([]discord.ManagedGuild, error)
	calls           int
}

func (m *mockGuildService) ListManaged(
	ctx context.Context,
	session domainauth.Session,
) ([]discord.ManagedGuild, error) {
	m.calls++
	if m.listManagedFunc != nil {
		return m.listManagedFunc(ctx, session)
	}
	return []discord.ManagedGuild{}, nil
}

func testSession() *domainauth.Session {
	return &domainauth.Session{
		ID:          "test-session-id",
		UserID:      "80351110224678912",
		Username:    "nelly",
		AccessToken: "test-access-token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func guildRequestWithSession(session *domainauth.Session) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/getUserServers", nil)
	return req.WithContext(SetSessionInContext(req.Context(), session))
}

func TestGuildHandlers_ListUserServers_Success(t *testing.T) {
	icon := "a1b2c3"
	mockSvc := &mockGuildService{
		listManagedFunc: func(_ context.Context, _ domainauth.Session) ([]discord.ManagedGuild, error) {
			return []discord.ManagedGuild{
				{Guild: discord.Guild{ID: "1", Name: "Division HQ", Icon: &icon, Owner: true}, CanManage: true},
				{Guild: discord.Guild{ID: "2", Name: "Raid Night"}, CanManage: true},
			}, nil
		},
	}
	handlers := &GuildHandlers{Svc: mockSvc}

	w := httptest.NewRecorder()
	handlers.ListUserServers(w, guildRequestWithSession(testSession()))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Servers []map[string]interface{} `json:"servers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Servers, 2)
	assert.Equal(t, "Division HQ", body.Servers[0]["name"])
	assert.Equal(t, true, body.Servers[0]["can_manage"])
	assert.Equal(t, "2", body.Servers[1]["id"])
}

func TestGuildHandlers_ListUserServers_EmptyListIsNotNull(t *testing.T) {
	handlers := &GuildHandlers{Svc: &mockGuildService{}}

	w := httptest.NewRecorder()
	handlers.ListUserServers(w, guildRequestWithSession(testSession()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"servers":[]}`, w.Body.String())
}

func TestGuildHandlers_ListUserServers_NoSession(t *testing.T) {
	mockSvc := &mockGuildService{}
	handlers := &GuildHandlers{Svc: mockSvc}

	req := httptest.NewRequest(http.MethodGet, "/api/getUserServers", nil)
	w := httptest.NewRecorder()

	handlers.ListUserServers(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// Nothing should reach the service without a session.
	assert.Equal(t, 0, mockSvc.calls)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "authentication_required", body["error"])
}

func TestGuildHandlers_ListUserServers_MirrorsUpstreamStatus(t *testing.T) {
	mockSvc := &mockGuildService{
		listManagedFunc: func(_ context.Context, _ domainauth.Session) ([]discord.ManagedGuild, error) {
			return nil, apperrors.Upstream(http.StatusTooManyRequests, "guild listing failed", nil)
		},
	}
	handlers := &GuildHandlers{Svc: mockSvc}

	w := httptest.NewRecorder()
	handlers.ListUserServers(w, guildRequestWithSession(testSession()))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	// Generic body only, regardless of what the provider returned.
	assert.Contains(t, w.Body.String(), "provider request failed")
}
