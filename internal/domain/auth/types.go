package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Role is the canonical numeric classification of an account.
// Stored and compared only in this form; names are mapped at ingress.
type Role int

const (
	RoleCitizen        Role = 0
	RoleRepresentative Role = 1
	RoleAdministrator  Role = 2
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r >= RoleCitizen && r <= RoleAdministrator
}

func (r Role) String() string {
	switch r {
	case RoleCitizen:
		return "citizen"
	case RoleRepresentative:
		return "representative"
	case RoleAdministrator:
		return "administrator"
	default:
		return "role(" + strconv.Itoa(int(r)) + ")"
	}
}

// RawRole is a role as it arrives from the backend or legacy storage:
// either an ordinal or a name. The zero value is an absent role.
type RawRole struct {
	ordinal int
	name    string
	named   bool
	set     bool
}

// RoleOrdinal wraps a numeric role.
func RoleOrdinal(n int) RawRole { return RawRole{ordinal: n, set: true} }

// RoleName wraps a role name such as "Admin".
func RoleName(s string) RawRole { return RawRole{name: s, named: true, set: true} }

// IsSet reports whether a role was present at all. Missing and null roles are not set.
func (r RawRole) IsSet() bool { return r.set }

// IsNamed reports whether the role is still in name form.
func (r RawRole) IsNamed() bool { return r.named }

// Name returns the raw name, or "" for numeric roles.
func (r RawRole) Name() string { return r.name }

// Ordinal returns the numeric value and false when the role is absent or in name form.
func (r RawRole) Ordinal() (int, bool) {
	if !r.set || r.named {
		return 0, false
	}
	return r.ordinal, true
}

// Role converts to the canonical enum. It fails for absent roles, names and
// out-of-range ordinals.
func (r RawRole) Role() (Role, bool) {
	n, ok := r.Ordinal()
	if !ok {
		return 0, false
	}
	role := Role(n)
	return role, role.Valid()
}

func (r RawRole) String() string {
	switch {
	case !r.set:
		return ""
	case r.named:
		return r.name
	default:
		return strconv.Itoa(r.ordinal)
	}
}

// MarshalJSON keeps the form the value was created with. An absent role is null.
func (r RawRole) MarshalJSON() ([]byte, error) {
	switch {
	case !r.set:
		return []byte("null"), nil
	case r.named:
		return json.Marshal(r.name)
	default:
		return json.Marshal(r.ordinal)
	}
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (r *RawRole) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = RawRole{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RoleName(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("role must be a number or a string: %w", err)
	}
	*r = RoleOrdinal(n)
	return nil
}

// UserProfile is the profile part of a session.
type UserProfile struct {
	UserID           string  `json:"userId"`
	Email            string  `json:"email"`
	Username         string  `json:"username"`
	Role             Role    `json:"role"`
	OrganisationID   *string `json:"organisationId,omitempty"`
	OrganisationName *string `json:"organisationName,omitempty"`
}

// ProfileUpdate carries the fields to replace on a profile. Nil fields are kept.
type ProfileUpdate struct {
	Email    *string
	Username *string
	Password *string
}

// Merge returns a copy of p with the non-nil fields of u applied.
// Password is not part of the profile and is ignored here.
func (p UserProfile) Merge(u ProfileUpdate) UserProfile {
	out := p
	if u.Email != nil {
		out.Email = *u.Email
	}
	if u.Username != nil {
		out.Username = *u.Username
	}
	return out
}

// Session pairs a token with the profile it was issued for.
// Both parts are always present together.
type Session struct {
	Token   string
	Profile UserProfile
}

// Challenge is a one-time code bound to an identifier until ExpiresAt.
type Challenge struct {
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the challenge is no longer usable at now.
func (c Challenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// SessionState is the client-side authentication state.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticating  SessionState = "authenticating"
	StateAuthenticated   SessionState = "authenticated"
)
