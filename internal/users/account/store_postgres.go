// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package account

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhngyn/opusdb/internal/platform/dberr"
	"github.com/minhngyn/opusdb/internal/users/auth"
)

const accountSelect = `
	SELECT id, username, email, firstname, lastname, bio, role, createdat, updatedat
	FROM users.account
`

// PostgresRepository implements AccountRepository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	query := accountSelect
	countQuery := `SELECT count(*) FROM users.account`

	args := []any{}
	countArgs := []any{}

	if search != "" {
		searchTerm := "%" + search + "%"
		query += ` WHERE username ILIKE $1 OR email ILIKE $1`
		countQuery += ` WHERE username ILIKE $1 OR email ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	query += ` ORDER BY username ASC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
			&user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, total, nil
}

func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	return repository.findOne(context, accountSelect+` WHERE username = $1`, username)
}

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*auth.User, error) {
	return repository.findOne(context, accountSelect+` WHERE email = $1`, email)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	return repository.findOne(context, accountSelect+` WHERE id = $1`, id)
}

func (repository *PostgresRepository) Create(context context.Context, user *auth.User) error {
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

func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	query := `
		UPDATE users.account
		SET username = $2, email = $3, firstname = $4, lastname = $5, bio = $6, role = $7, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_user")
}

func (repository *PostgresRepository) DeleteByUsername(context context.Context, username string) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM users.account WHERE username = $1`, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) findOne(context context.Context, query string, arg any) (*auth.User, error) {
	user := &auth.User{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user")
	}
	return user, nil
}
