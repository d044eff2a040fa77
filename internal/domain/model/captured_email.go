//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const maxEmailLen = 254

// CapturedEmail is a marketing signup captured from the landing page.
type CapturedEmail struct {
	ID        string    `json:"id"         db:"id"`
	Email     string    `json:"email"      db:"email"`
	Source    string    `json:"source"     db:"source"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CaptureEmailRequest represents parameters to record a signup email.
type CaptureEmailRequest struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// NormalizedEmail returns the trimmed, lowercased form used for storage and
// uniqueness.
func (r *CaptureEmailRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate validates CaptureEmailRequest.
func (r *CaptureEmailRequest) Validate() error {
	email := r.NormalizedEmail()
	if email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return errors.New("email cannot exceed 254 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email is not a valid address")
	}
	return nil
}
