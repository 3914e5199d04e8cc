package domain

import (
	"github.com/google/uuid"
)

// Role is the token audience an identity was issued for.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleSeller || r == RoleAdmin
}

// Identity is the authenticated caller, built once per request and passed by
// value so no component can alter it.
type Identity struct {
	SubjectID uuid.UUID
	Role      Role
	TokenID   string
}

// Is reports whether the identity holds role.
func (i Identity) Is(role Role) bool {
	return i.Role == role
}

// Owns reports whether the identity is the subject.
func (i Identity) Owns(subject uuid.UUID) bool {
	return i.SubjectID == subject
}
