// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

/*
Package auth implements passwordless identity and access management.

Signing up issues an emailed confirmation code; exchanging a valid code
yields a JWT access token plus a rotating refresh session. There are no
passwords anywhere in the system.

Architecture:

  - Service: Orchestrates business logic (SignUp, ExchangeCode, Refresh).
  - Repository: Abstracted interfaces for Postgres (users, sessions) and
    Redis (confirmation codes).
  - Security: bcrypt-hashed codes, SHA-256 hashed refresh tokens, HS256 JWTs.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minhngyn/opusdb/internal/platform/apperr"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
	"github.com/minhngyn/opusdb/internal/platform/sec"
	"github.com/minhngyn/opusdb/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and checking access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)

	// VerifyToken checks a JWT string and returns its claims.
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Service implements the signup and token exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code issuance,
// exchange, or session logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	codeRepository    CodeRepository
	codeDispatcher    CodeDispatcher
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs the auth Service with its dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	codeRepo CodeRepository,
	dispatcher CodeDispatcher,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		codeRepository:    codeRepo,
		codeDispatcher:    dispatcher,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Signup Flow

// SignUpInput holds the data required to request a confirmation code.
type SignUpInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
SignUp registers a new account, or re-issues a confirmation code for an
existing one.

Description: Submitting the exact (username, email) pair of an existing
account is NOT an error: it generates a fresh code and re-sends the mail,
so users who lost the first email can simply sign up again. A username or
email that collides with a DIFFERENT account is rejected with field errors.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *User: The created or existing account
  - err: Validation failures or storage errors
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).Username(FieldUsername, input.Username)
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Look up both identity columns to distinguish "same account again"
	// from a genuine collision.
	byUsername, usernameErr := service.userRepository.FindByUsername(context, input.Username)
	if usernameErr != nil && !errors.Is(usernameErr, dberr.ErrNotFound) {
		return nil, usernameErr
	}
	byEmail, emailErr := service.userRepository.FindByEmail(context, input.Email)
	if emailErr != nil && !errors.Is(emailErr, dberr.ErrNotFound) {
		return nil, emailErr
	}

	// Re-send path: the pair matches one existing account exactly.
	if byUsername != nil && byUsername.Email == input.Email {
		if err := service.issueCode(context, byUsername); err != nil {
			return nil, err
		}
		return byUsername, nil
	}

	conflicts := &validate.Validator{}
	conflicts.Custom(FieldUsername, byUsername != nil, "This username is already taken")
	conflicts.Custom(FieldEmail, byEmail != nil, "This email is already registered")
	if err := conflicts.Err(); err != nil {
		return nil, err
	}

	user := &User{
		// Time-sortable ID to prevent PG index fragmentation.
		ID:       uuid.Must(uuid.NewV7()).String(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	service.logger.Info("user_signed_up", slog.String("username", user.Username))

	if err := service.issueCode(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

// issueCode generates, stores, and dispatches a fresh confirmation code.
//
// Mail delivery is best-effort: the account exists either way and the user
// can always sign up again to trigger a re-send.
func (service *Service) issueCode(context context.Context, user *User) error {
	code, err := sec.GenerateSecureToken(ConfirmationCodeLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_code_failed: %w", err)
	}

	codeHash, err := sec.HashCode(code)
	if err != nil {
		return fmt.Errorf("auth_service_hash_code_failed: %w", err)
	}

	if err := service.codeRepository.Set(context, user.ID, codeHash, ConfirmationCodeTTL); err != nil {
		return fmt.Errorf("auth_service_save_code_failed: %w", err)
	}

	if err := service.codeDispatcher.SendConfirmationCode(context, user.Email, user.Username, code); err != nil {
		service.logger.Error("confirmation_code_dispatch_failed",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
	}

	return nil
}

// # Token Exchange

// TokenSession represents a successfully established session.
type TokenSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
ExchangeCode trades a username plus confirmation code for tokens.

Description: An unknown username is a 404 (the account to authenticate does
not exist); a wrong or expired code for a known user is a validation error.
The code stays valid until its TTL, so a flaky client may retry.

Parameters:
  - context: context.Context
  - username: string
  - code: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *TokenSession: Transport-ready session identifiers
  - err: NotFound, validation, or internal failures
*/
func (service *Service) ExchangeCode(context context.Context, username, code, userAgent, ipAddress string) (*TokenSession, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	codeHash, err := service.codeRepository.Get(context, user.ID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, validate.RequiredError(FieldConfirmationCode, "Confirmation code is invalid or expired")
		}
		return nil, err
	}

	if !sec.CheckCode(code, codeHash) {
		return nil, validate.RequiredError(FieldConfirmationCode, "Confirmation code is invalid or expired")
	}

	session, err := service.openSession(context, user, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("token_issued", slog.String("username", user.Username))
	return session, nil
}

/*
RefreshSession implements the refresh token rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *TokenSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*TokenSession, error) {
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: revoke the old session to prevent replay attacks.
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

/*
Logout permanently revokes the caller's active refresh session.

Description: Idempotent; an already revoked or unknown token still counts
as a successful logout.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// VerifyAccess validates an access token string and returns its claims.
func (service *Service) VerifyAccess(tokenString string) (*sec.AuthClaims, error) {
	claims, err := service.tokenProvider.VerifyToken(tokenString)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired access token")
	}
	return claims, nil
}

// openSession issues a fresh access token and tracked refresh session.
func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*TokenSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &TokenSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
