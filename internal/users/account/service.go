// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

/*
Package account implements profile self-service and administrative user
management on top of the shared account repository.

Two audiences use this package through the same service:

  - Any authenticated user manages their own profile via /users/me. Role is
    not theirs to change; whatever the payload says, the stored role wins.
  - Administrators manage the full user directory via /users, including
    role assignment.
*/
package account

import (
	"context"
	"log/slog"

	"github.com/quangdm/revio/internal/platform/sec"
	"github.com/quangdm/revio/internal/platform/validate"
	"github.com/quangdm/revio/internal/users/auth"
	"github.com/quangdm/revio/pkg/pagination"
	"github.com/quangdm/revio/pkg/uuid"
)

// Service implements account profile and directory use cases.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # Self-Service Profile

// GetByUsername retrieves a single account.
func (service *Service) GetByUsername(context context.Context, username string) (*auth.User, error) {
	return service.userRepository.FindByUsername(context, username)
}

// ProfileUpdateInput holds a partial self-service profile update. Nil fields
// keep their stored value. There is deliberately no role field here.
type ProfileUpdateInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

/*
UpdateProfile applies a partial update to the acting user's own account.

Description: The stored role is always carried forward untouched; a client
cannot promote itself by patching /users/me, no matter what the payload
contains.

Parameters:
  - context: context.Context
  - actor: Authenticated user claims
  - input: ProfileUpdateInput

Returns:
  - *auth.User: Updated account
  - error: Validation or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, actor *sec.AuthClaims, input ProfileUpdateInput) (*auth.User, error) {
	user, err := service.userRepository.FindByUsername(context, actor.Username)
	if err != nil {
		return nil, err
	}

	applyProfileFields(user, input.Email, input.FirstName, input.LastName, input.Bio)

	if err := validateProfile(user); err != nil {
		return nil, err
	}

	// Role re-pin: Update persists user.Role, which was loaded from storage
	// and never overlaid from the payload.
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.String("user_id", user.ID))
	return user, nil
}

// # Administrative Directory

// List returns a page of accounts with an optional username search.
func (service *Service) List(context context.Context, search string, params pagination.Params) ([]auth.User, int, error) {
	return service.userRepository.List(context, search, params)
}

// AdminCreateInput holds the data for an administrator-created account.
type AdminCreateInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// Create registers an account on behalf of an administrator. Unlike signup,
// the role is assignable and no confirmation code is dispatched; the user
// can claim the account later through the normal signup flow.
func (service *Service) Create(context context.Context, input AdminCreateInput) (*auth.User, error) {
	role := sec.UserRole(input.Role)
	if input.Role == "" {
		role = sec.RoleUser
	}

	validator := validate.New().
		Required("username", input.Username).
		MaxLen("username", input.Username, auth.MaxUsernameLength).
		Username("username", input.Username).
		Required("email", input.Email).
		MaxLen("email", input.Email, auth.MaxEmailLength).
		Email("email", input.Email).
		Custom("role", !role.Valid(), "Must be one of: user, moderator, admin")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created_by_admin",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// AdminUpdateInput holds a partial administrative update, which may include
// a role change.
type AdminUpdateInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// Update applies a partial update to any account, including role assignment.
func (service *Service) Update(context context.Context, username string, input AdminUpdateInput) (*auth.User, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	applyProfileFields(user, input.Email, input.FirstName, input.LastName, input.Bio)

	if input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}

	validator := validate.New().
		Custom("role", !user.Role.Valid(), "Must be one of: user, moderator, admin")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := validateProfile(user); err != nil {
		return nil, err
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated_by_admin",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// Delete removes an account and everything it authored.
func (service *Service) Delete(context context.Context, username string) error {
	if err := service.userRepository.DeleteByUsername(context, username); err != nil {
		return err
	}

	service.logger.Info("user_deleted_by_admin", slog.String("username", username))
	return nil
}

// # Shared Helpers

// applyProfileFields overlays the non-nil profile fields onto the account.
func applyProfileFields(user *auth.User, email, firstName, lastName, bio *string) {
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}

// validateProfile checks the account's mutable profile fields after overlay.
func validateProfile(user *auth.User) error {
	return validate.New().
		Required("email", user.Email).
		MaxLen("email", user.Email, auth.MaxEmailLength).
		Email("email", user.Email).
		MaxLen("first_name", user.FirstName, auth.MaxFirstNameLength).
		MaxLen("last_name", user.LastName, auth.MaxLastNameLength).
		Err()
}
