// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhngyn/opusdb/internal/platform/dberr"
)

const userSelect = `
	SELECT id, username, email, firstname, lastname, bio, role, createdat, updatedat
	FROM users.account
`

// PostgresUserRepository implements UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := `
		INSERT INTO users.account (id, username, email, firstname, lastname, bio, role, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, userSelect+` WHERE username = $1`, username)
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, userSelect+` WHERE email = $1`, email)
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, userSelect+` WHERE id = $1`, id)
}

func (repository *PostgresUserRepository) findOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user")
	}
	return user, nil
}

// # Session Repository

// PostgresSessionRepository implements SessionRepository using PostgreSQL.
type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := `
		INSERT INTO users.session (id, userid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
		RETURNING createdat
	`

	err := repository.db.QueryRow(context, query,
		session.ID, session.UserID, session.TokenHash, session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)
	return dberr.Wrap(err, "create_session")
}

func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	query := `
		SELECT id, userid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat
		FROM users.session
		WHERE tokenhash = $1 AND isrevoked = false AND expiresat > NOW()
	`

	session := &Session{}
	err := repository.db.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent,
		&session.IPAddress, &session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_session_by_token_hash")
	}
	return session, nil
}

func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	cmd, err := repository.db.Exec(context,
		`UPDATE users.session SET isrevoked = true WHERE id = $1`, sessionID,
	)
	if err != nil {
		return dberr.Wrap(err, "revoke_session")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	_, err := repository.db.Exec(context,
		`UPDATE users.session SET isrevoked = true WHERE userid = $1 AND isrevoked = false`, userID,
	)
	return dberr.Wrap(err, "revoke_all_sessions")
}
