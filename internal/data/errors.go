package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Captured email repository sentinels.
	ErrEmailRequired = errors.New("email is required")

	// Verification repository sentinels.
	ErrVerificationNotFound   = errors.New("verification not found")
	ErrInvalidStateTransition = errors.New("invalid verification state transition")
)
