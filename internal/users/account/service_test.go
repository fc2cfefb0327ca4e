// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngyn/opusdb/internal/platform/apperr"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
	"github.com/minhngyn/opusdb/internal/platform/sec"
	"github.com/minhngyn/opusdb/internal/users/account"
	"github.com/minhngyn/opusdb/internal/users/auth"
	"github.com/minhngyn/opusdb/pkg/pointer"
)

// # Fakes

type fakeAccountRepository struct {
	users map[string]*auth.User // by ID
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{users: map[string]*auth.User{}}
}

func (f *fakeAccountRepository) List(_ context.Context, _ string, _, _ int) ([]*auth.User, int, error) {
	var out []*auth.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeAccountRepository) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeAccountRepository) DeleteByUsername(_ context.Context, username string) error {
	for id, u := range f.users {
		if u.Username == username {
			delete(f.users, id)
			return nil
		}
	}
	return dberr.ErrNotFound
}

type fakeSessionRevoker struct {
	revokedFor []string
}

func (f *fakeSessionRevoker) RevokeAll(_ context.Context, userID string) error {
	f.revokedFor = append(f.revokedFor, userID)
	return nil
}

// # Harness

func newAccountService(repo *fakeAccountRepository, sessions *fakeSessionRevoker) *account.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repo, sessions, logger)
}

func seedUser(repo *fakeAccountRepository, id, username, email string, role sec.UserRole) *auth.User {
	user := &auth.User{ID: id, Username: username, Email: email, Role: role}
	repo.users[id] = user
	return user
}

/*
TestCreateUser_DefaultsAndRoles verifies role defaulting and the role whitelist.
*/
func TestCreateUser_DefaultsAndRoles(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		expectedRole sec.UserRole
		isValid      bool
	}{
		{"default_role", "", sec.RoleUser, true},
		{"explicit_moderator", "moderator", sec.RoleModerator, true},
		{"explicit_admin", "admin", sec.RoleAdmin, true},
		{"unknown_role", "superuser", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAccountRepository()
			service := newAccountService(repo, &fakeSessionRevoker{})

			user, err := service.CreateUser(context.Background(), account.CreateInput{
				Username: "alice",
				Email:    "alice@example.com",
				Role:     tt.role,
			})

			if tt.isValid {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedRole, user.Role)
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			}
		})
	}
}

/*
TestCreateUser_IdentityConflicts rejects claimed usernames and emails.
*/
func TestCreateUser_IdentityConflicts(t *testing.T) {
	repo := newFakeAccountRepository()
	seedUser(repo, "u1", "alice", "alice@example.com", sec.RoleUser)
	service := newAccountService(repo, &fakeSessionRevoker{})

	_, err := service.CreateUser(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "fresh@example.com",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "username", ae.Details[0].Field)
}

/*
TestUpdateSelf_RoleSuppression ensures a regular user cannot escalate via
their own profile: the role field is silently ignored while the rest of
the patch still applies.
*/
func TestUpdateSelf_RoleSuppression(t *testing.T) {
	repo := newFakeAccountRepository()
	seedUser(repo, "u1", "alice", "alice@example.com", sec.RoleUser)
	service := newAccountService(repo, &fakeSessionRevoker{})
	actor := &sec.AuthClaims{UserID: "u1", Username: "alice", Role: string(sec.RoleUser)}

	updated, err := service.UpdateSelf(context.Background(), actor, account.UpdateInput{
		Bio:  pointer.To("music nerd"),
		Role: pointer.To("admin"),
	})

	require.NoError(t, err)
	assert.Equal(t, "music nerd", updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role, "role change must be dropped for non-privileged callers")
}

/*
TestUpdateSelf_AdminKeepsRoleField confirms role-capable callers can still
set the field on their own account.
*/
func TestUpdateSelf_AdminKeepsRoleField(t *testing.T) {
	repo := newFakeAccountRepository()
	seedUser(repo, "u1", "root", "root@example.com", sec.RoleAdmin)
	service := newAccountService(repo, &fakeSessionRevoker{})
	actor := &sec.AuthClaims{UserID: "u1", Username: "root", Role: string(sec.RoleAdmin)}

	updated, err := service.UpdateSelf(context.Background(), actor, account.UpdateInput{
		Role: pointer.To("moderator"),
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)
}

/*
TestUpdateUser_IdentityExemptsSelf allows re-submitting an account's own
username while changing other fields.
*/
func TestUpdateUser_IdentityExemptsSelf(t *testing.T) {
	repo := newFakeAccountRepository()
	seedUser(repo, "u1", "alice", "alice@example.com", sec.RoleUser)
	service := newAccountService(repo, &fakeSessionRevoker{})

	updated, err := service.UpdateUser(context.Background(), "alice", account.UpdateInput{
		Username:  pointer.To("alice"),
		FirstName: pointer.To("Alice"),
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "Alice", updated.FirstName)
}

/*
TestUpdateUser_ConflictingUsername rejects renaming onto another account.
*/
func TestUpdateUser_ConflictingUsername(t *testing.T) {
	repo := newFakeAccountRepository()
	seedUser(repo, "u1", "alice", "alice@example.com", sec.RoleUser)
	seedUser(repo, "u2", "bob", "bob@example.com", sec.RoleUser)
	service := newAccountService(repo, &fakeSessionRevoker{})

	_, err := service.UpdateUser(context.Background(), "bob", account.UpdateInput{
		Username: pointer.To("alice"),
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestDeleteUser_RevokesSessions checks the account removal security cleanup.
*/
func TestDeleteUser_RevokesSessions(t *testing.T) {
	repo := newFakeAccountRepository()
	seedUser(repo, "u1", "alice", "alice@example.com", sec.RoleUser)
	revoker := &fakeSessionRevoker{}
	service := newAccountService(repo, revoker)

	require.NoError(t, service.DeleteUser(context.Background(), "alice"))

	assert.Empty(t, repo.users)
	assert.Equal(t, []string{"u1"}, revoker.revokedFor)

	// Deleting a missing account is a 404.
	err := service.DeleteUser(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
