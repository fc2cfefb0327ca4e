// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package auth

import (
	"time"

	"github.com/minhngyn/opusdb/internal/platform/sec"
)

// User is a registered account.
//
// There is no password: access is bootstrapped from an emailed confirmation
// code, exchanged for a JWT access token and a refresh session.
type User struct {
	ID        string       `json:"-"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

// Session is a tracked refresh-token session. Only the SHA-256 hash of the
// refresh token is stored.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	UserAgent string
	IPAddress string
	ExpiresAt time.Time
	IsRevoked bool
	CreatedAt time.Time
}
