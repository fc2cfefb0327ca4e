// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GenerateSecureToken returns a URL-safe random token of byteLength entropy bytes.
//
// It is used for refresh tokens and confirmation codes. The encoded string is
// longer than byteLength because of base64 expansion.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// HashToken produces a deterministic SHA-256 digest of a token.
//
// Refresh tokens are stored hashed so a database leak does not expose live
// session credentials. SHA-256 (not bcrypt) because the token itself already
// carries full entropy and the hash must be usable as a lookup key.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

// HashCode hashes a confirmation code with bcrypt before it is cached.
//
// Codes are keyed by user ID rather than by code value, so a slow,
// non-deterministic hash is usable here and a cache snapshot leaks nothing.
func HashCode(plainCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckCode compares a plain-text confirmation code with its stored hash.
func CheckCode(plainCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainCode))
	return err == nil
}
