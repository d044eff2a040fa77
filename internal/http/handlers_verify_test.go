package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/model"
	apperrors "github.com/division-gg/division-api/internal/errors"
	"github.com/division-gg/division-api/internal/service"
)

// mockVerificationService is a test double for service.VerificationService.
type mockVerificationService struct {
	completeAuthorizationFunc func(ctx context.Context, identity domainauth.Identity) (*service.IssuedChallenge, error)
	issueChallengeFunc        func(ctx context.Context, userID string) (*service.IssuedChallenge, error)
	completeChallengeFunc     func(ctx context.Context, input service.CompleteChallengeInput) (*model.Verification, error)
	statusFunc                func(ctx context.Context, userID string) (model.VerificationState, error)
}

func (m *mockVerificationService) CompleteAuthorization(
	ctx context.Context,
	identity domainauth.Identity,
) (*service.IssuedChallenge, error) {
	if m.completeAuthorizationFunc != nil {
		return m.completeAuthorizationFunc(ctx, identity)
	}
	return &service.IssuedChallenge{
		ID:        "test-challenge-id",
		Prompt:    "17 + 25",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

func (m *mockVerificationService) IssueChallenge(
	ctx context.Context,
	userID string,
) (*service.IssuedChallenge, error) {
	if m.issueChallengeFunc != nil {
		return m.issueChallengeFunc(ctx, userID)
	}
	return &service.IssuedChallenge{
		ID:        "test-challenge-id",
		Prompt:    "17 + 25",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

func (m *mockVerificationService) CompleteChallenge(
	ctx context.Context,
	input service.CompleteChallengeInput,
) (*model.Verification, error) {
	if m.completeChallengeFunc != nil {
		return m.completeChallengeFunc(ctx, input)
	}
	now := time.Now()
	return &model.Verification{
		ID:         "test-verification-id",
		UserID:     "80351110224678912",
		Username:   "nelly",
		State:      model.VerificationVerified,
		VerifiedAt: &now,
	}, nil
}

func (m *mockVerificationService) Status(
	ctx context.Context,
	userID string,
) (model.VerificationState, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, userID)
	}
	return model.VerificationAwaitingChallenge, nil
}

func verifyRequestWithSession(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(SetSessionInContext(req.Context(), testSession()))
}

func TestVerifyHandlers_IssueChallenge_Success(t *testing.T) {
	handlers := &VerifyHandlers{Svc: &mockVerificationService{}}

	w := httptest.NewRecorder()
	handlers.IssueChallenge(w, verifyRequestWithSession(http.MethodPost, "/api/verify/challenge", ""))

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "test-challenge-id", body["challenge_id"])
	assert.Equal(t, "17 + 25", body["prompt"])
	// The answer must never appear in the payload.
	assert.NotContains(t, w.Body.String(), "answer")
	assert.NotContains(t, w.Body.String(), "42")
}

func TestVerifyHandlers_IssueChallenge_NoSession(t *testing.T) {
	handlers := &VerifyHandlers{Svc: &mockVerificationService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/verify/challenge", nil)
	w := httptest.NewRecorder()

	handlers.IssueChallenge(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyHandlers_IssueChallenge_NotAuthorizedYet(t *testing.T) {
	mockSvc := &mockVerificationService{
		issueChallengeFunc: func(_ context.Context, _ string) (*service.IssuedChallenge, error) {
			return nil, apperrors.Validation("authorization has not completed")
		},
	}
	handlers := &VerifyHandlers{Svc: mockSvc}

	w := httptest.NewRecorder()
	handlers.IssueChallenge(w, verifyRequestWithSession(http.MethodPost, "/api/verify/challenge", ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyHandlers_IssueChallenge_AlreadyVerified(t *testing.T) {
	mockSvc := &mockVerificationService{
		issueChallengeFunc: func(_ context.Context, _ string) (*service.IssuedChallenge, error) {
			return nil, apperrors.Conflict("user is already verified")
		},
	}
	handlers := &VerifyHandlers{Svc: mockSvc}

	w := httptest.NewRecorder()
	handlers.IssueChallenge(w, verifyRequestWithSession(http.MethodPost, "/api/verify/challenge", ""))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVerifyHandlers_CompleteChallenge_Success(t *testing.T) {
	var gotInput service.CompleteChallengeInput
	mockSvc := &mockVerificationService{
		completeChallengeFunc: func(_ context.Context, input service.CompleteChallengeInput) (*model.Verification, error) {
			gotInput = input
			return &model.Verification{
				UserID: "80351110224678912",
				State:  model.VerificationVerified,
			}, nil
		},
	}
	handlers := &VerifyHandlers{Svc: mockSvc}

	req := httptest.NewRequest(http.MethodPost, "/api/verify",
		strings.NewReader(`{"challenge_id":"test-challenge-id","answer":"42"}`))
	w := httptest.NewRecorder()

	handlers.CompleteChallenge(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-challenge-id", gotInput.ChallengeID)
	assert.Equal(t, "42", gotInput.Answer)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Verification successful", body["message"])
	assert.Equal(t, "verified", body["state"])
}

func TestVerifyHandlers_CompleteChallenge_WrongAnswer(t *testing.T) {
	mockSvc := &mockVerificationService{
		completeChallengeFunc: func(_ context.Context, _ service.CompleteChallengeInput) (*model.Verification, error) {
			return nil, apperrors.Validation("incorrect answer")
		},
	}
	handlers := &VerifyHandlers{Svc: mockSvc}

	req := httptest.NewRequest(http.MethodPost, "/api/verify",
		strings.NewReader(`{"challenge_id":"test-challenge-id","answer":"41"}`))
	w := httptest.NewRecorder()

	handlers.CompleteChallenge(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body["error"])
}

func TestVerifyHandlers_CompleteChallenge_MalformedBody(t *testing.T) {
	handlers := &VerifyHandlers{Svc: &mockVerificationService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/verify",
		strings.NewReader(`{"challenge_id":7}`))
	w := httptest.NewRecorder()

	handlers.CompleteChallenge(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyHandlers_Status_Success(t *testing.T) {
	handlers := &VerifyHandlers{Svc: &mockVerificationService{}}

	w := httptest.NewRecorder()
	handlers.Status(w, verifyRequestWithSession(http.MethodGet, "/api/verify/status", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"awaiting_challenge"}`, w.Body.String())
}

func TestVerifyHandlers_Status_NoSession(t *testing.T) {
	handlers := &VerifyHandlers{Svc: &mockVerificationService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/verify/status", nil)
	w := httptest.NewRecorder()

	handlers.Status(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
