package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/division-gg/division-api/internal/data"
	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/domain/model"
	apperrors "github.com/division-gg/division-api/internal/errors"
	"github.com/division-gg/division-api/internal/ports"
)

// defaultChallengeTTL bounds how long an issued challenge stays answerable.
const defaultChallengeTTL = 5 * time.Minute

// VerificationRepo abstracts the verification persistence used by
// VerificationService.
type VerificationRepo interface {
	Start(ctx context.Context, req *model.StartVerificationRequest) (*model.Verification, error)
	GetByUserID(ctx context.Context, userID string) (*model.Verification, error)
	Transition(ctx context.Context, userID string, next model.VerificationState) (*model.Verification, error)
}

// VerificationServiceOptions groups dependencies for VerificationService.
type VerificationServiceOptions struct {
	Repo       VerificationRepo
	Challenges ports.ChallengeStore
	// ChallengeTTL overrides the default challenge lifetime when positive.
	ChallengeTTL time.Duration
}

// VerificationService runs the verification state machine. Challenges are
// generated and answered server-side; the client only ever sees the opaque
// challenge ID and the prompt.
type VerificationService struct {
	repo         VerificationRepo
	challenges   ports.ChallengeStore
	challengeTTL time.Duration
}

// NewVerificationService constructs a new VerificationService.
func NewVerificationService(opts VerificationServiceOptions) *VerificationService {
	ttl := opts.ChallengeTTL
	if ttl <= 0 {
		ttl = defaultChallengeTTL
	}
	return &VerificationService{
		repo:         opts.Repo,
		challenges:   opts.Challenges,
		challengeTTL: ttl,
	}
}

// IssuedChallenge is what the client receives after authorization: the
// opaque ID, the prompt to answer, and the deadline. The answer stays
// server-side.
type IssuedChallenge struct {
	ID        string    `json:"challenge_id"`
	Prompt    string    `json:"prompt"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CompleteAuthorization records that the user authorized through the
// provider, advances the state machine, and issues a challenge.
func (s *VerificationService) CompleteAuthorization(
	ctx context.Context,
	identity domainauth.Identity,
) (*IssuedChallenge, error) {
	req := model.StartVerificationRequest{UserID: identity.UserID, Username: identity.Username}
	v, err := s.repo.Start(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("start verification: %w", err)
	}
	if v.State == model.VerificationVerified {
		return nil, apperrors.Conflict("user is already verified")
	}

	if _, err = s.repo.Transition(ctx, identity.UserID, model.VerificationAwaitingChallenge); err != nil {
		return nil, fmt.Errorf("advance verification: %w", err)
	}
	return s.IssueChallenge(ctx, identity.UserID)
}

// IssueChallenge creates a fresh server-side challenge for a user in the
// awaiting_challenge state. Issuing again replaces nothing: old challenges
// simply expire or are consumed on first use.
func (s *VerificationService) IssueChallenge(ctx context.Context, userID string) (*IssuedChallenge, error) {
	v, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, data.ErrVerificationNotFound) {
			return nil, apperrors.NotFound("verification not started")
		}
		return nil, fmt.Errorf("get verification: %w", err)
	}
	if v.State == model.VerificationVerified {
		return nil, apperrors.Conflict("user is already verified")
	}
	if v.State != model.VerificationAwaitingChallenge {
		return nil, apperrors.Validation("authorization has not completed")
	}

	prompt, answer, err := generateChallenge()
	if err != nil {
		return nil, fmt.Errorf("generate challenge: %w", err)
	}

	ch := ports.Challenge{
		ID:        uuid.NewString(),
		UserID:    userID,
		Prompt:    prompt,
		Answer:    answer,
		ExpiresAt: time.Now().Add(s.challengeTTL),
	}
	if saveErr := s.challenges.Save(ctx, ch, s.challengeTTL); saveErr != nil {
		return nil, fmt.Errorf("save challenge: %w", saveErr)
	}

	return &IssuedChallenge{ID: ch.ID, Prompt: ch.Prompt, ExpiresAt: ch.ExpiresAt}, nil
}

// CompleteChallengeInput groups parameters for answering a challenge.
type CompleteChallengeInput struct {
	ChallengeID string
	Answer      string
}

// CompleteChallenge consumes a challenge and, on a correct answer within the
// TTL, marks the user verified. A wrong answer burns the challenge; the
// client must request a new one.
func (s *VerificationService) CompleteChallenge(
	ctx context.Context,
	input CompleteChallengeInput,
) (*model.Verification, error) {
	if input.ChallengeID == "" {
		return nil, apperrors.Validation("challenge_id is required")
	}

	ch, err := s.challenges.Take(ctx, input.ChallengeID)
	if err != nil {
		// Absent and expired are indistinguishable to the client.
		return nil, apperrors.Validation("challenge is invalid or has expired")
	}
	if time.Now().After(ch.ExpiresAt) {
		return nil, apperrors.Validation("challenge is invalid or has expired")
	}
	if strings.TrimSpace(input.Answer) != ch.Answer {
		return nil, apperrors.Validation("incorrect answer")
	}

	v, err := s.repo.Transition(ctx, ch.UserID, model.VerificationVerified)
	if err != nil {
		if errors.Is(err, data.ErrVerificationNotFound) {
			return nil, apperrors.NotFound("verification not started")
		}
		if errors.Is(err, data.ErrInvalidStateTransition) {
			return nil, apperrors.Validation("verification is not awaiting a challenge")
		}
		return nil, fmt.Errorf("complete verification: %w", err)
	}
	return v, nil
}

// Status returns the verification state for a Discord user. A user who never
// started the flow reports awaiting_authorization.
func (s *VerificationService) Status(ctx context.Context, userID string) (model.VerificationState, error) {
	v, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, data.ErrVerificationNotFound) {
			return model.VerificationAwaitingAuthorization, nil
		}
		return "", fmt.Errorf("get verification: %w", err)
	}
	return v.State, nil
}

// generateChallenge produces a small arithmetic prompt with a uniformly
// random operand pair. The answer is returned in decimal.
func generateChallenge() (prompt, answer string, err error) {
	a, err := rand.Int(rand.Reader, big.NewInt(90))
	if err != nil {
		return "", "", err
	}
	b, err := rand.Int(rand.Reader, big.NewInt(90))
	if err != nil {
		return "", "", err
	}
	x, y := a.Int64()+10, b.Int64()+10
	return fmt.Sprintf("%d + %d", x, y), fmt.Sprintf("%d", x+y), nil
}
