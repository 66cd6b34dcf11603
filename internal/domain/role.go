package domain

import (
	"fmt"
	"strings"
)

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleUser       Role = "user"
)

// ParseRole validates a role coming from a request, token or legacy row.
// "tech" was written by older revisions and is read as technician.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, nil
	case "technician", "tech":
		return RoleTechnician, nil
	case "user":
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleUser:
		return true
	}
	return false
}

// Privileged reports whether the role sees and mutates every ticket.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleTechnician
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller passed explicitly into every operation.
type Actor struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

// NewActor builds an actor from an identity.
func NewActor(id int64, role Role) Actor {
	return Actor{ID: id, Role: role}
}
