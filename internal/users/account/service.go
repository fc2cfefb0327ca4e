// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/minhngyn/opusdb/internal/platform/dberr"
	"github.com/minhngyn/opusdb/internal/platform/sec"
	"github.com/minhngyn/opusdb/internal/platform/validate"
	"github.com/minhngyn/opusdb/internal/users/auth"
)

// # Service Layer

// Service orchestrates user administration and profile self-service.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Administration

func (service *Service) ListUsers(context context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	return service.accountRepository.List(context, search, limit, offset)
}

func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

/*
CreateUser provisions an account directly, without the confirmation flow.

Description: Admin-facing enrollment. The new user still authenticates via
the regular signup/token flow later; this merely pre-creates identity and
role assignments.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: Created account
  - err: Validation failures or storage errors
*/
func (service *Service) CreateUser(context context.Context, input CreateInput) (*auth.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).Username(FieldUsername, input.Username)
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, auth.MaxEmailLength)
	validator.MaxLen(FieldFirstName, input.FirstName, MaxNameLength)
	validator.MaxLen(FieldLastName, input.LastName, MaxNameLength)
	validator.OneOf(FieldRole, input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkIdentityFree(context, input.Username, input.Email, ""); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	service.logger.Info("user_created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

/*
UpdateUser applies a partial set of changes to any account (admin only).

Parameters:
  - context: context.Context
  - username: string (current username of the target account)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - err: Not found, validation, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	return service.applyUpdate(context, user, input, true)
}

/*
DeleteUser removes an account by username.

Description: Active refresh sessions are revoked as a security cleanup, so
the deleted account's credentials die with it.
*/
func (service *Service) DeleteUser(context context.Context, username string) error {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.accountRepository.DeleteByUsername(context, username); err != nil {
		return err
	}

	_ = service.sessionRepository.RevokeAll(context, user.ID)

	service.logger.Warn("user_deleted", slog.String("username", username))
	return nil
}

// # Self Service

func (service *Service) GetSelf(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

/*
UpdateSelf applies profile changes to the calling user's own account.

Description: The role field is only honored when the caller holds the
role-assignment capability; for everyone else it is silently ignored, so a
regular user PATCHing {"role": "admin"} updates nothing but their profile.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - err: Validation or storage failures
*/
func (service *Service) UpdateSelf(context context.Context, actor *sec.AuthClaims, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, actor.UserID)
	if err != nil {
		return nil, err
	}

	allowRole := sec.UserRole(actor.Role).Can(sec.ActionAssignRoles)
	return service.applyUpdate(context, user, input, allowRole)
}

// applyUpdate merges the delta into the loaded user, validates the result,
// and persists it.
func (service *Service) applyUpdate(context context.Context, user *auth.User, input UpdateInput, allowRole bool) (*auth.User, error) {
	validator := &validate.Validator{}

	if input.Username != nil {
		newUsername := strings.TrimSpace(*input.Username)
		validator.Required(FieldUsername, newUsername).Username(FieldUsername, newUsername)
		user.Username = newUsername
	}
	if input.Email != nil {
		newEmail := strings.TrimSpace(*input.Email)
		validator.Required(FieldEmail, newEmail).
			Email(FieldEmail, newEmail).
			MaxLen(FieldEmail, newEmail, auth.MaxEmailLength)
		user.Email = newEmail
	}
	if input.FirstName != nil {
		validator.MaxLen(FieldFirstName, *input.FirstName, MaxNameLength)
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		validator.MaxLen(FieldLastName, *input.LastName, MaxNameLength)
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil && allowRole {
		validator.OneOf(FieldRole, *input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
		user.Role = sec.UserRole(*input.Role)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Username != nil || input.Email != nil {
		if err := service.checkIdentityFree(context, user.Username, user.Email, user.ID); err != nil {
			return nil, err
		}
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_updated", slog.String("username", user.Username))
	return user, nil
}

// checkIdentityFree verifies username and email are not claimed by another
// account. selfID exempts the account being edited from the check.
func (service *Service) checkIdentityFree(context context.Context, username, email, selfID string) error {
	validator := &validate.Validator{}

	byUsername, err := service.accountRepository.FindByUsername(context, username)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return err
	}
	validator.Custom(FieldUsername, byUsername != nil && byUsername.ID != selfID, "This username is already taken")

	byEmail, err := service.accountRepository.FindByEmail(context, email)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return err
	}
	validator.Custom(FieldEmail, byEmail != nil && byEmail.ID != selfID, "This email is already registered")

	return validator.Err()
}
