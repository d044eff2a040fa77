//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// VerificationState tracks how far a Discord user has progressed through the
// verification flow.
type VerificationState string

const (
	// VerificationAwaitingAuthorization means the user has started the flow
	// but has not yet authorized through Discord.
	VerificationAwaitingAuthorization VerificationState = "awaiting_authorization"
	// VerificationAwaitingChallenge means authorization succeeded and a
	// challenge has been issued but not yet answered.
	VerificationAwaitingChallenge VerificationState = "awaiting_challenge"
	// VerificationVerified is the terminal state.
	VerificationVerified VerificationState = "verified"
)

// Valid reports whether the state is one of the supported values.
func (s VerificationState) Valid() bool {
	switch s {
	case VerificationAwaitingAuthorization, VerificationAwaitingChallenge, VerificationVerified:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the state machine permits moving to next.
// States only move forward; re-entering the same state is allowed so that a
// user restarting the flow does not error.
func (s VerificationState) CanTransitionTo(next VerificationState) bool {
	if s == next {
		return true
	}
	switch s {
	case VerificationAwaitingAuthorization:
		return next == VerificationAwaitingChallenge
	case VerificationAwaitingChallenge:
		return next == VerificationVerified
	default:
		return false
	}
}

// ParseVerificationState normalizes a state string and reports whether it is
// supported.
func ParseVerificationState(value string) (VerificationState, bool) {
	s := VerificationState(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// Verification is one Discord user's progress through the verification flow.
type Verification struct {
	ID         string            `json:"id"                    db:"id"`
	UserID     string            `json:"user_id"               db:"user_id"`
	Username   string            `json:"username"              db:"username"`
	State      VerificationState `json:"state"                 db:"state"`
	VerifiedAt *time.Time        `json:"verified_at,omitempty" db:"verified_at"`
	CreatedAt  time.Time         `json:"created_at"            db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"            db:"updated_at"`
}

// StartVerificationRequest represents parameters to begin (or restart) a
// verification for a Discord user.
type StartVerificationRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Validate validates StartVerificationRequest.
func (r *StartVerificationRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	return nil
}
