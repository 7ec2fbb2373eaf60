// Package models holds the server-side domain records.
package models

import (
	"slices"
	"time"
)

// Role is a permission level. The set is closed.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

var roles = []Role{RoleUser, RoleManager, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return slices.Contains(roles, r)
}

func (r Role) String() string { return string(r) }

// ParseRole returns the Role named s or false when s is not a known role.
// Matching is exact: "admin" is not ADMIN.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User is a directory record. PasswordHash and PasswordSalt never leave the
// server: transport types do not have fields for them.
type User struct {
	ID           string
	UserName     string
	Email        string
	FullName     string
	PasswordHash string
	PasswordSalt string
	Avatar       string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfilePatch is a sparse profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Email    *string
	FullName *string
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Email == nil && p.FullName == nil
}
