package ports

import (
	"context"

	"github.com/kaffehuset/coffeeshop-api/internal/core/policy"
)

// UserProfile is the administrative projection of a user record: the full
// field set served to admins and to a user viewing their own profile.
// CreatedAt is a display string and Roles a comma-joined name list in the
// order the roles were granted.
type UserProfile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
	Roles     string `json:"roles"`
}

// SelfProfile is the restricted self-service projection: contact fields
// only, no username, roles, or timestamps.
type SelfProfile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

// UpdateProfileInput carries the writable profile fields. ID identifies the
// stored record to rewrite; it is a lookup key, never a writable field.
type UpdateProfileInput struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	Address   string
}

// UserService defines the user management use cases. Every operation takes
// the resolved caller and applies the profile access policy before touching
// the repository.
type UserService interface {
	Profile(ctx context.Context, caller *policy.Caller, username string) (*UserProfile, error)
	Self(ctx context.Context, caller *policy.Caller) (*SelfProfile, error)
	UpdateProfile(ctx context.Context, caller *policy.Caller, username string, input UpdateProfileInput) (*UserProfile, error)
	List(ctx context.Context, caller *policy.Caller) ([]UserProfile, error)
	GrantAdmin(ctx context.Context, caller *policy.Caller, username string) ([]string, error)
	RevokeAdmin(ctx context.Context, caller *policy.Caller, username string) ([]string, error)
	Delete(ctx context.Context, caller *policy.Caller, username string) error
}
