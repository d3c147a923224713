package domain

import (
	"errors"
	"strings"
	"time"
)

// RoleName is a closed set of role tags attached to users.
type RoleName string

const (
	RoleUser  RoleName = "ROLE_USER"
	RoleAdmin RoleName = "ROLE_ADMIN"
)

// Role is a named permission tag. Equality is by name.
type Role struct {
	Name RoleName `json:"name" bson:"name"`
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// User models an account in the coffee shop system.
//
// ID is assigned once at creation and never reused. Roles keeps insertion
// order: the comma-joined display string must list roles in the order they
// were granted.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	Roles        []Role    `json:"roles"`
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// AddRole appends a role with set semantics: adding a role the user already
// has is a no-op, and insertion order is preserved.
func (u *User) AddRole(name RoleName) {
	if u.HasRole(name) {
		return
	}
	u.Roles = append(u.Roles, Role{Name: name})
}

// RemoveRole drops the named role. Removing an absent role is a no-op.
func (u *User) RemoveRole(name RoleName) {
	for i, r := range u.Roles {
		if r.Name == name {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return
		}
	}
}

// RoleNames returns the role names in insertion order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return names
}

// JoinedRoleNames renders the display form used in profile projections,
// e.g. "ROLE_USER, ROLE_ADMIN".
func (u *User) JoinedRoleNames() string {
	return strings.Join(u.RoleNames(), ", ")
}
