package domain

import (
	"reflect"
	"testing"
)

func TestUserRoleSet(t *testing.T) {
	u := &User{Username: "alice"}

	u.AddRole(RoleUser)
	u.AddRole(RoleAdmin)
	u.AddRole(RoleUser) // duplicate, must be ignored

	want := []string{"ROLE_USER", "ROLE_ADMIN"}
	if got := u.RoleNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("RoleNames() = %v, want %v", got, want)
	}
	if got := u.JoinedRoleNames(); got != "ROLE_USER, ROLE_ADMIN" {
		t.Fatalf("JoinedRoleNames() = %q", got)
	}
	if !u.IsAdmin() {
		t.Fatal("IsAdmin() = false after AddRole(RoleAdmin)")
	}
}

func TestUserRemoveRole(t *testing.T) {
	u := &User{}
	u.AddRole(RoleUser)
	u.AddRole(RoleAdmin)

	u.RemoveRole(RoleAdmin)
	if u.IsAdmin() {
		t.Fatal("IsAdmin() = true after RemoveRole(RoleAdmin)")
	}
	if got := u.JoinedRoleNames(); got != "ROLE_USER" {
		t.Fatalf("JoinedRoleNames() = %q, want ROLE_USER", got)
	}

	// Removing an absent role is a no-op.
	u.RemoveRole(RoleAdmin)
	if got := len(u.Roles); got != 1 {
		t.Fatalf("len(Roles) = %d after double remove, want 1", got)
	}
}

func TestUserHasRole_Empty(t *testing.T) {
	u := &User{}
	if u.HasRole(RoleUser) {
		t.Fatal("HasRole on empty role set returned true")
	}
	if got := u.JoinedRoleNames(); got != "" {
		t.Fatalf("JoinedRoleNames() = %q on empty set", got)
	}
}
