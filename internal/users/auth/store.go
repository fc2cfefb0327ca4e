// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository persists account identity data.
type UserRepository interface {
	// Create inserts a new user row.
	Create(context context.Context, user *User) error

	// FindByUsername returns the user with the given username,
	// or dberr.ErrNotFound.
	FindByUsername(context context.Context, username string) (*User, error)

	// FindByEmail returns the user with the given email, or dberr.ErrNotFound.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByID returns the user with the given ID, or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*User, error)
}

// SessionRepository persists refresh-token sessions.
type SessionRepository interface {
	// Create inserts a new session row.
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns the live (unrevoked, unexpired) session for the
	// given token hash.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke marks a single session as revoked.
	Revoke(context context.Context, sessionID string) error

	// RevokeAll marks every session of a user as revoked.
	RevokeAll(context context.Context, userID string) error
}

// CodeRepository stores hashed confirmation codes keyed by user ID.
//
// A user has at most one active code; issuing a new one replaces the old.
type CodeRepository interface {
	Set(context context.Context, userID, codeHash string, ttl time.Duration) error
	Get(context context.Context, userID string) (string, error)
}

// CodeDispatcher delivers a confirmation code to the user out of band.
type CodeDispatcher interface {
	SendConfirmationCode(context context.Context, recipient, username, code string) error
}
