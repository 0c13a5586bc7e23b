// model/actor.go
package model

import "strings"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSubadmin Role = "SUBADMIN"
	RoleStandard Role = "STANDARD"
)

// ParseRole is case-insensitive; anything unrecognised is STANDARD.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSubadmin:
		return RoleSubadmin
	default:
		return RoleStandard
	}
}

// Privileged reports whether the role bypasses placement approval entirely.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleSubadmin
}

// ActorContext is the authenticated actor status is resolved for.
type ActorContext struct {
	UserID     string `json:"userId,omitempty"`
	Username   string `json:"username,omitempty"`
	Role       Role   `json:"role"`
	HasSession bool   `json:"hasSession"`
}
