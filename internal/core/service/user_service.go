package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/policy"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

// createdAtLayout is the display format used for timestamps in projections.
const createdAtLayout = "2006-01-02T15:04:05Z"

// UserService implements user profile and role management.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Profile returns the administrative projection of the named user. The
// access decision is made before the store is touched: a denied request has
// no side effects and performs no reads.
func (s *UserService) Profile(ctx context.Context, caller *policy.Caller, username string) (*ports.UserProfile, error) {
	if err := policy.CanViewProfile(caller, username); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := adminProjection(user)
	return &profile, nil
}

// Self returns the restricted self-service projection of the caller's own
// record.
func (s *UserService) Self(ctx context.Context, caller *policy.Caller) (*ports.SelfProfile, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByUsername(ctx, caller.Username)
	if err != nil {
		return nil, err
	}

	return &ports.SelfProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Address:   user.Address,
	}, nil
}

// UpdateProfile rewrites the writable profile fields of the record
// identified by input.ID. ID, CreatedAt, the password hash, and the role
// set never change through this path regardless of payload content.
func (s *UserService) UpdateProfile(ctx context.Context, caller *policy.Caller, username string, input ports.UpdateProfileInput) (*ports.UserProfile, error) {
	if err := policy.CanUpdateProfile(caller, username); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	user.Username = input.Username
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	user.Address = input.Address

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to update profile")
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("profile updated")

	profile := adminProjection(user)
	return &profile, nil
}

// List returns the administrative projection of every stored user, in store
// enumeration order.
func (s *UserService) List(ctx context.Context, caller *policy.Caller) ([]ports.UserProfile, error) {
	if err := policy.CanListUsers(caller); err != nil {
		return nil, err
	}

	users, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]ports.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, adminProjection(u))
	}
	return profiles, nil
}

// GrantAdmin adds the admin role to the target. Granting to an existing
// admin is a no-op that still succeeds, and the returned role names keep
// their original order with the new role appended last.
func (s *UserService) GrantAdmin(ctx context.Context, caller *policy.Caller, username string) ([]string, error) {
	if err := policy.CanGrantAdmin(caller); err != nil {
		return nil, err
	}
	return s.setRole(ctx, username, domain.RoleAdmin, true)
}

// RevokeAdmin removes the admin role from the target. Revoking from a
// non-admin is likewise a no-op success.
func (s *UserService) RevokeAdmin(ctx context.Context, caller *policy.Caller, username string) ([]string, error) {
	if err := policy.CanRevokeAdmin(caller); err != nil {
		return nil, err
	}
	return s.setRole(ctx, username, domain.RoleAdmin, false)
}

func (s *UserService) setRole(ctx context.Context, username string, role domain.RoleName, grant bool) ([]string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if grant {
		user.AddRole(role)
	} else {
		user.RemoveRole(role)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to update roles")
		return nil, fmt.Errorf("update roles: %w", err)
	}

	s.logger.Info().Str("username", username).Strs("roles", user.RoleNames()).Bool("grant", grant).Msg("roles changed")
	return user.RoleNames(), nil
}

// Delete removes the named user from the store.
func (s *UserService) Delete(ctx context.Context, caller *policy.Caller, username string) error {
	if err := policy.CanDeleteUser(caller); err != nil {
		return err
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, user.ID); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to delete user")
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("username", username).Int64("user_id", user.ID).Msg("user deleted")
	return nil
}

// adminProjection shapes the full admin-facing view of a user record. The
// password hash is never part of any projection.
func adminProjection(u *domain.User) ports.UserProfile {
	return ports.UserProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Address:   u.Address,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.UTC().Format(createdAtLayout),
		Roles:     u.JoinedRoleNames(),
	}
}
