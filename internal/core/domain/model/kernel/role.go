package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Role is the caller's role as resolved by the identity provider.
type Role string

const (
	RoleGuest   Role = "GUEST"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleCourier Role = "COURIER"
	RoleStaff   Role = "STAFF"
)

// ParseRole accepts "ROLE_ADMIN" and "admin" style names. Blank input means
// an unauthenticated caller; any other unknown role is treated as STAFF.
func ParseRole(s string) Role {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	switch Role(s) {
	case "":
		return RoleGuest
	case RoleGuest, RoleAdmin, RoleManager, RoleCourier, RoleStaff:
		return Role(s)
	default:
		return RoleStaff
	}
}

func (r Role) String() string {
	return string(r)
}

// Capability is a named set of roles allowed to perform an action.
type Capability struct {
	action  string
	allowed map[Role]struct{}
	exclude bool
}

func allow(action string, roles ...Role) Capability {
	c := Capability{action: action, allowed: make(map[Role]struct{}, len(roles))}
	for _, r := range roles {
		c.allowed[r] = struct{}{}
	}
	return c
}

func deny(action string, roles ...Role) Capability {
	c := allow(action, roles...)
	c.exclude = true
	return c
}

var (
	CapabilityFulfil        = allow("fulfil orders", RoleAdmin, RoleManager)
	CapabilityAdvanceStatus = allow("advance order status", RoleAdmin, RoleManager, RoleCourier)
	CapabilityIssueQr       = deny("issue qr tokens", RoleGuest)
)

func (c Capability) Action() string {
	return c.action
}

func (c Capability) Allows(r Role) bool {
	_, listed := c.allowed[r]
	return listed != c.exclude
}

// ActingUser is the authenticated (or guest) caller of an operation.
type ActingUser struct {
	ID   string
	Role Role
}

func NewActingUser(id string, role Role) ActingUser {
	id = strings.TrimSpace(id)
	if id == "" {
		id = string(RoleGuest)
	}
	if role == "" {
		role = RoleGuest
	}
	return ActingUser{ID: id, Role: role}
}

func Guest() ActingUser {
	return NewActingUser("", RoleGuest)
}

// Authorize returns an Unauthorized error when the user's role lacks c.
func (u ActingUser) Authorize(c Capability) error {
	if c.Allows(u.Role) {
		return nil
	}
	return errs.NewUnauthorizedError(c.action, u.Role.String())
}
