package discord

// TokenResponse is the provider's authorization-code exchange result.
// It is held only for the duration of the exchange; the access token is
// persisted in the server-side session, never returned to the client.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope"`
}

// User is the provider's current-user object, passed through to the
// dashboard unmodified.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Email         string `json:"email,omitempty"`
	Verified      bool   `json:"verified,omitempty"`
}

// Guild is one entry of the provider's current-user guild list.
// Icon is null for guilds without a custom icon.
type Guild struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	Icon                   *string     `json:"icon"`
	Owner                  bool        `json:"owner,omitempty"`
	ApproximateMemberCount int         `json:"approximate_member_count,omitempty"`
	Permissions            Permissions `json:"permissions"`
	Features               []string    `json:"features,omitempty"`
}

// ManagedGuild is a Guild annotated with the derived management capability
// the server picker renders.
type ManagedGuild struct {
	Guild
	CanManage bool `json:"can_manage"`
}

// CanManage reports whether the user may administer the guild: MANAGE_GUILD
// or ADMINISTRATOR must be set. Ownership is not consulted; Discord grants
// owners the full permission set, so the bits already cover them.
func (g Guild) CanManage() bool {
	return g.Permissions.CanManage()
}
