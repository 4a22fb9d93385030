// Package session owns the client-side authenticated-session lifecycle: the
// canonical member/role model, the persisted session store, and the state
// machines driving the user and admin portals.
package session

import (
	"context"

	"github.com/tidwall/gjson"

	kerrors "github.com/khel-store/khel/internal/errors"
)

// Role is the canonical server-assigned role category.
type Role string

const (
	// RoleNone means no recognizable role was present on the wire
	RoleNone Role = ""
	// RoleUser is a regular store member
	RoleUser Role = "USER"
	// RoleAdmin grants access to the administrative portal
	RoleAdmin Role = "ADMIN"
)

// Member is the identity record of an authenticated principal.
//
// The wire encodes roles in several shapes (a plain role string, a collection
// of role strings, objects with a name field, or Spring-style authority
// strings). UnmarshalJSON collapses all of them into the single canonical Role
// so nothing downstream ever inspects the raw shapes.
type Member struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber"`
	Role        Role    `json:"role"`
	Balance     float64 `json:"balance"`
	JoiningDate string  `json:"joiningDate,omitempty"`
}

// UnmarshalJSON decodes a member record from any of the accepted wire shapes.
func (m *Member) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return kerrors.New(kerrors.ErrCodeAPIDecode, "malformed member record")
	}

	m.ID = gjson.GetBytes(data, "id").Int()
	m.Name = gjson.GetBytes(data, "name").String()
	m.PhoneNumber = gjson.GetBytes(data, "phoneNumber").String()
	m.Balance = gjson.GetBytes(data, "balance").Float()
	m.JoiningDate = gjson.GetBytes(data, "joiningDate").String()
	m.Role = NormalizeRole(data)

	return nil
}

// NormalizeRole probes a raw member record for every accepted role shape and
// returns the canonical role. ADMIN wins over USER when both markers appear.
func NormalizeRole(member []byte) Role {
	role := RoleNone

	consider := func(candidate Role) {
		if candidate == RoleAdmin {
			role = RoleAdmin
		} else if candidate == RoleUser && role != RoleAdmin {
			role = RoleUser
		}
	}

	if r := gjson.GetBytes(member, "role"); r.Type == gjson.String {
		consider(roleFromValue(r.String()))
	}

	gjson.GetBytes(member, "roles").ForEach(func(_, entry gjson.Result) bool {
		switch {
		case entry.Type == gjson.String:
			consider(roleFromValue(entry.String()))
		case entry.IsObject():
			consider(roleFromValue(entry.Get("name").String()))
			consider(roleFromValue(entry.Get("authority").String()))
		}
		return true
	})

	return role
}

// roleFromValue maps a single wire value onto a canonical role. Authority
// strings carry the Spring "ROLE_" prefix.
func roleFromValue(v string) Role {
	switch v {
	case "ADMIN", "ROLE_ADMIN":
		return RoleAdmin
	case "USER", "ROLE_USER":
		return RoleUser
	default:
		return RoleNone
	}
}

// Session is the composite record persisted for one portal: the bearer token
// and its paired identity, always written together.
type Session struct {
	Token  string `json:"token"`
	Member Member `json:"member"`
}

// LoginOutcome is the normalized result of a successful credential exchange.
type LoginOutcome struct {
	Token   string
	Member  Member
	Message string
}

// Result is the uniform success/failure outcome of session operations.
// Failures never propagate as errors past the manager boundary; they are
// normalized into a message for the caller to render.
type Result struct {
	Success bool
	Message string
}

// State is the session lifecycle state.
type State int

const (
	// StateUnauthenticated means no session is active
	StateUnauthenticated State = iota
	// StateAuthenticating means a credential exchange or validation is in flight
	StateAuthenticating
	// StateAuthenticated means a validated session is active
	StateAuthenticated
	// StateInvalid means a stored session failed validation and was discarded
	StateInvalid
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// AuthAPI is the slice of the remote gateway the session managers depend on.
type AuthAPI interface {
	Login(ctx context.Context, phoneNumber, password string) (*LoginOutcome, error)
	Register(ctx context.Context, name, phoneNumber, password string) (string, error)
	RegisterAdmin(ctx context.Context, name, phoneNumber, password string) (string, error)
	Validate(ctx context.Context) (bool, error)
}
