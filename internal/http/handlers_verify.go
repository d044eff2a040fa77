package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/model"
	"github.com/division-gg/division-api/internal/service"
)

// VerificationServiceInterface defines the interface for the member
// verification flow.
type VerificationServiceInterface interface {
	CompleteAuthorization(ctx context.Context, identity domainauth.Identity) (*service.IssuedChallenge, error)
	IssueChallenge(ctx context.Context, userID string) (*service.IssuedChallenge, error)
	CompleteChallenge(ctx context.Context, input service.CompleteChallengeInput) (*model.Verification, error)
	Status(ctx context.Context, userID string) (model.VerificationState, error)
}

// VerifyHandlers provides HTTP handlers for the verification flow.
type VerifyHandlers struct {
	Svc    VerificationServiceInterface
	Logger *slog.Logger
}

func (h *VerifyHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// IssueChallenge hands out a fresh challenge for the current user.
// POST /api/verify/challenge. Requires an authenticated session.
func (h *VerifyHandlers) IssueChallenge(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	challenge, err := h.Svc.IssueChallenge(r.Context(), session.UserID)
	if err != nil {
		h.logger().WarnContext(r.Context(), "challenge issuance failed",
			"user_id", session.UserID, "error", err)
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, challenge)
}

// CompleteChallenge checks a submitted answer and finishes verification.
// POST /api/verify with body {"challenge_id": "<id>", "answer": "<answer>"}.
func (h *VerifyHandlers) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChallengeID string `json:"challenge_id"`
		Answer      string `json:"answer"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	verification, err := h.Svc.CompleteChallenge(r.Context(), service.CompleteChallengeInput{
		ChallengeID: req.ChallengeID,
		Answer:      req.Answer,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Verification successful",
		"state":   verification.State,
	})
}

// Status reports where the current user sits in the verification flow.
// GET /api/verify/status. Requires an authenticated session.
func (h *VerifyHandlers) Status(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	state, err := h.Svc.Status(r.Context(), session.UserID)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "verification status lookup failed",
			"user_id", session.UserID, "error", err)
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
	})
}
