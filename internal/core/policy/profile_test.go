package policy

import (
	"errors"
	"testing"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

func TestCanViewProfile(t *testing.T) {
	alice := &Caller{Username: "alice"}
	admin := &Caller{Username: "root", Admin: true}

	tests := []struct {
		name    string
		caller  *Caller
		target  string
		wantErr error
	}{
		{"self access allowed", alice, "alice", nil},
		{"other user forbidden", alice, "bob", domain.ErrForbidden},
		{"anonymous unauthenticated", nil, "bob", domain.ErrUnauthenticated},
		{"admin reads anyone", admin, "bob", nil},
		{"admin reads self", admin, "root", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanViewProfile(tt.caller, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CanViewProfile(%v, %q) = %v, want %v", tt.caller, tt.target, err, tt.wantErr)
			}
		})
	}
}

func TestCanViewProfile_SelfBeatsAdminCheck(t *testing.T) {
	// A non-admin viewing their own profile must be allowed without the
	// admin branch ever mattering.
	caller := &Caller{Username: "alice", Admin: false}
	if err := CanViewProfile(caller, "alice"); err != nil {
		t.Fatalf("self access denied: %v", err)
	}
}

func TestCanUpdateProfile_SameRuleAsView(t *testing.T) {
	alice := &Caller{Username: "alice"}

	if err := CanUpdateProfile(alice, "alice"); err != nil {
		t.Fatalf("self update denied: %v", err)
	}
	if err := CanUpdateProfile(alice, "bob"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := CanUpdateProfile(nil, "bob"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAdminOnlyOperations(t *testing.T) {
	ops := map[string]func(*Caller) error{
		"list users":   CanListUsers,
		"grant admin":  CanGrantAdmin,
		"revoke admin": CanRevokeAdmin,
		"delete user":  CanDeleteUser,
	}

	admin := &Caller{Username: "root", Admin: true}
	user := &Caller{Username: "alice"}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(admin); err != nil {
				t.Fatalf("admin denied: %v", err)
			}
			if err := op(user); !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
			}
			if err := op(nil); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated for anonymous, got %v", err)
			}
		})
	}
}
