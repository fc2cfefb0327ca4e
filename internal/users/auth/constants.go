// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package auth

import "time"

// Token lifetimes and sizes.
const (
	// AccessTokenTTL keeps the JWT short-lived; refresh handles longevity.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL bounds how long an idle session survives.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the refresh token entropy in bytes.
	RefreshTokenLength = 32

	// ConfirmationCodeTTL is how long an emailed signup code stays valid.
	// Codes are reusable within this window; a repeat signup issues a new one.
	ConfirmationCodeTTL = 24 * time.Hour

	// ConfirmationCodeLength is the confirmation code entropy in bytes.
	ConfirmationCodeLength = 24
)

// Field limits mirrored by the database schema.
const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
)

// Field names used in validation errors.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
)

// JSON keys used in token responses.
const (
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldToken       = "token"
	FieldMessage     = "message"
)
