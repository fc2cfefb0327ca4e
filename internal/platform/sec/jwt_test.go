// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngyn/opusdb/internal/platform/sec"
)

/*
TestTokenService_RoundTrip generates a token and verifies its claims survive
the sign/verify cycle.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret-at-least-long-enough", "opusdb.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "capybara", "moderator", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "capybara", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.Equal(t, "opusdb.app", claims.Issuer)
}

/*
TestTokenService_WrongSecret ensures tokens signed with another secret are rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	signer, err := sec.NewTokenService("secret-one", "opusdb.app")
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("secret-two", "opusdb.app")
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("user-1", "capybara", "user", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Expired ensures expired tokens fail verification.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "opusdb.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "capybara", "user", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestNewTokenService_EmptySecret rejects construction without a secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "opusdb.app")
	assert.Error(t, err)
}
