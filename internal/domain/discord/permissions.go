// Package discord contains domain-level types for the Discord API surface
// the dashboard consumes. It is pure and free of transport concerns.
package discord

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Permission bit flags, as documented by the provider. Discord encodes the
// full set as a decimal string because the flag space has outgrown 2^32;
// the value must never pass through 32-bit or float arithmetic.
const (
	PermissionAdministrator Permissions = 0x8
	PermissionManageGuild   Permissions = 0x20
)

// Permissions is a guild permission bitmask. The zero value carries no
// capabilities.
type Permissions uint64

// ParsePermissions parses Discord's decimal-string permission encoding.
// Malformed or empty input yields zero permissions; it never fails, so a
// guild with a bad permissions field is simply treated as non-manageable.
func ParsePermissions(s string) Permissions {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return Permissions(v)
}

// Has reports whether every bit of flag is set.
func (p Permissions) Has(flag Permissions) bool {
	return p&flag == flag
}

// CanManage reports whether the bitmask grants dashboard access to a guild:
// MANAGE_GUILD or ADMINISTRATOR.
func (p Permissions) CanManage() bool {
	return p.Has(PermissionManageGuild) || p.Has(PermissionAdministrator)
}

// UnmarshalJSON accepts both the current decimal-string encoding and the
// legacy JSON number form. Anything else decodes to zero permissions.
func (p *Permissions) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = ParsePermissions(s)
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Permissions(n)
		return nil
	}
	*p = 0
	return nil
}

// MarshalJSON emits the decimal-string form so round-trips match what the
// provider sends.
func (p Permissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(p), 10))
}
