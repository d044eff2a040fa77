// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "time"

// Identity represents the authenticated Discord principal returned by the
// provider. The adapter maps the /users/@me payload into this shape.
type Identity struct {
	UserID      string // Discord snowflake
	Username    string
	GlobalName  string
	Email       string
	AvatarHash  string
	AccessToken string    // bearer credential for subsequent provider calls
	ExpiresAt   time.Time // absolute expiry derived from expires_in
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier; AccessToken never leaves the server.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	GlobalName  string    `json:"global_name"`
	Email       string    `json:"email"`
	AvatarHash  string    `json:"avatar_hash"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// HasToken reports whether the session carries a usable bearer credential.
func (s Session) HasToken() bool { return s.AccessToken != "" }
