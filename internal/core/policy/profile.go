// Package policy holds the profile access rules for the user endpoints.
//
// Every function is a pure decision over the caller identity and, where
// relevant, the target username. A nil return means the operation may
// proceed; otherwise the sentinel error classifies the denial. The package
// never touches the store and never logs, which keeps the rules trivially
// testable.
package policy

import "github.com/kaffehuset/coffeeshop-api/internal/core/domain"

// Caller is the authenticated identity resolved from the session.
// A nil *Caller means the request carries no valid session.
type Caller struct {
	Username string
	Admin    bool
}

// CanViewProfile decides whether caller may read target's profile.
// Self-access wins before the admin branch: a user always sees their own
// profile, admin rights are only consulted for other users' profiles.
//
// The self-check compares usernames, not ids. A caller renamed mid-session
// would lose access under this rule; kept as-is because it is the
// externally observed behaviour.
func CanViewProfile(caller *Caller, target string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if caller.Username == target || caller.Admin {
		return nil
	}
	return domain.ErrForbidden
}

// CanUpdateProfile follows the same rule as CanViewProfile: self or admin.
func CanUpdateProfile(caller *Caller, target string) error {
	return CanViewProfile(caller, target)
}

// CanListUsers restricts the full user listing to admins.
func CanListUsers(caller *Caller) error {
	return adminOnly(caller)
}

// CanGrantAdmin restricts granting the admin role to admins. An absent
// caller yields ErrUnauthenticated, the same as every other admin mutation.
func CanGrantAdmin(caller *Caller) error {
	return adminOnly(caller)
}

// CanRevokeAdmin restricts revoking the admin role to admins.
func CanRevokeAdmin(caller *Caller) error {
	return adminOnly(caller)
}

// CanDeleteUser restricts account deletion to admins.
func CanDeleteUser(caller *Caller) error {
	return adminOnly(caller)
}

func adminOnly(caller *Caller) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if !caller.Admin {
		return domain.ErrForbidden
	}
	return nil
}
