// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quangdm/revio/internal/platform/apperr"
	"github.com/quangdm/revio/internal/platform/sec"
	"github.com/quangdm/revio/internal/platform/validate"
	"github.com/quangdm/revio/pkg/uuid"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token-exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code hashing, signup,
// or token issuance must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	notifier       CodeNotifier
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, notifier CodeNotifier, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		notifier:       notifier,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to request a confirmation code.
type SignupInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SignupReceipt echoes the accepted identity pair back to the client.
type SignupReceipt struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

/*
Signup registers an account, or refreshes an existing one, and dispatches a
confirmation code.

Description: The operation is idempotent for a matching (email, username)
pair: repeating it simply issues a fresh code, replacing the previous one.
A username bound to a different email, or an email bound to a different
username, is a validation error so identities can never be silently rebound.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupReceipt: Echo of the accepted identity pair
  - error: Validation, delivery, or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupReceipt, error) {
	validator := validate.New().
		Required("email", input.Email).
		MaxLen("email", input.Email, MaxEmailLength).
		Email("email", input.Email).
		Required("username", input.Username).
		MaxLen("username", input.Username, MaxUsernameLength).
		Username("username", input.Username)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.resolveAccount(context, input)
	if err != nil {
		return nil, err
	}

	// Issue a fresh code. Only its hash is stored; the raw value goes out
	// through the notifier and is otherwise forgotten.
	code, err := sec.GenerateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	codeHash, err := sec.HashCode(code)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdateConfirmationCode(context, user.ID, codeHash); err != nil {
		return nil, err
	}

	if err := service.notifier.Notify(context, user.Email, user.Username, code); err != nil {
		return nil, fmt.Errorf("auth_service_code_delivery_failed: %w", err)
	}

	service.logger.Info("signup_code_issued",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &SignupReceipt{Email: user.Email, Username: user.Username}, nil
}

// resolveAccount finds the account matching the signup pair or creates a new
// one. Cross-bound identity pairs are rejected.
func (service *Service) resolveAccount(context context.Context, input SignupInput) (*User, error) {
	byUsername, usernameErr := service.userRepository.FindByUsername(context, input.Username)
	if usernameErr != nil && !apperr.IsNotFound(usernameErr) {
		return nil, usernameErr
	}

	byEmail, emailErr := service.userRepository.FindByEmail(context, input.Email)
	if emailErr != nil && !apperr.IsNotFound(emailErr) {
		return nil, emailErr
	}

	// Existing account: the pair must match exactly.
	if byUsername != nil {
		if byUsername.Email != input.Email {
			return nil, apperr.ValidationError("Username is already taken")
		}
		return byUsername, nil
	}
	if byEmail != nil {
		// Email exists under a different username.
		return nil, apperr.ValidationError("Email is already registered")
	}

	// Fresh account. Time-sortable ID to keep the PG index happy.
	user := &User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// # Token Exchange

// TokenInput holds the data for exchanging a confirmation code.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// AccessGrant carries the issued token back to the client.
type AccessGrant struct {
	Access string `json:"access"`
}

/*
ExchangeToken trades a confirmation code for a signed access token.

Description: An unknown username is a lookup miss (404), while a known
username with the wrong code is bad input (400). Codes are reusable: a
successful exchange does not consume the code, so a lost token can be
re-issued from the same email.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - *AccessGrant: Signed JWT for the account
  - error: NotFound, validation, or signing errors
*/
func (service *Service) ExchangeToken(context context.Context, input TokenInput) (*AccessGrant, error) {
	validator := validate.New().
		Required("username", input.Username).
		Required("confirmation_code", input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return nil, err
	}

	if user.ConfirmationCodeHash == "" || !sec.CheckCodeHash(input.ConfirmationCode, user.ConfirmationCodeHash) {
		return nil, apperr.ValidationError("Invalid confirmation code")
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.Info("access_token_issued",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &AccessGrant{Access: token}, nil
}
