// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

/*
Package account implements user administration and profile self-service.

Administrators manage the full user table (list, create, patch, delete by
username); every authenticated user can read and patch their own profile
through the /users/me endpoints. The account entity itself is owned by the
auth package; this package only orchestrates around it.
*/
package account

import "context"

// Field names used in validation errors.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
	FieldRole      = "role"
)

// Name field limits mirrored by the database schema.
const (
	MaxNameLength = 150
)

// CreateInput is the admin payload for creating an account directly,
// bypassing the confirmation code flow.
type CreateInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateInput is the partial-update payload for accounts. Pointer fields
// distinguish "omitted" from "set to empty".
type UpdateInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// SessionRepository is the slice of the auth session store the account
// service needs for security cleanup on account deletion.
type SessionRepository interface {
	RevokeAll(context context.Context, userID string) error
}
