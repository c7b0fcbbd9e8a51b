// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangdm/revio/internal/platform/dberr"
	"github.com/quangdm/revio/pkg/pagination"
)

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns is the full account projection shared by all lookups.
const userColumns = `
	id, username, email, first_name, last_name, bio, role,
	confirmation_code_hash, created_at, updated_at`

/*
Create persists a new account record.

Description: Initializes the audit timestamps and inserts the full account
row. Username and email collisions surface as validation errors through the
dberr translation layer.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, first_name, last_name, bio, role,
			confirmation_code_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.ConfirmationCodeHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

// FindByUsername retrieves an account by its unique username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE username = $1`

	return repository.queryOne(context, query, username)
}

// FindByEmail retrieves an account by its unique email.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE email = $1`

	return repository.queryOne(context, query, email)
}

// Update rewrites the account's mutable profile fields and role.
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET email = $2, first_name = $3, last_name = $4, bio = $5, role = $6, updated_at = $7
		WHERE id = $1`

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_user")
	}

	return nil
}

// UpdateConfirmationCode replaces the stored confirmation code hash. The
// previous code stops working the moment this commits.
func (repository *PostgresUserRepository) UpdateConfirmationCode(context context.Context, userID, codeHash string) error {
	const query = `
		UPDATE users.account
		SET confirmation_code_hash = $2, updated_at = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, userID, codeHash, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_confirmation_code")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_confirmation_code")
	}

	return nil
}

// List returns a page of accounts ordered by username, with an optional
// case-insensitive username search.
func (repository *PostgresUserRepository) List(context context.Context, search string, params pagination.Params) ([]User, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM users.account
		WHERE $1 = '' OR username ILIKE '%' || $1 || '%'`

	const listQuery = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE $1 = '' OR username ILIKE '%' || $1 || '%'
		ORDER BY username ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	rows, err := repository.pool.Query(context, listQuery, search, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var user User
		if err := scanUser(rows, &user); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}

	return users, total, nil
}

// DeleteByUsername removes an account. Authored reviews and comments cascade.
func (repository *PostgresUserRepository) DeleteByUsername(context context.Context, username string) error {
	const query = `DELETE FROM users.account WHERE username = $1`

	tag, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_user")
	}

	return nil
}

// queryOne runs a single-row account lookup.
func (repository *PostgresUserRepository) queryOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	if err := scanUser(repository.pool.QueryRow(context, query, arg), user); err != nil {
		return nil, err
	}
	return user, nil
}

// scanUser reads one userColumns row into the target entity.
func scanUser(row pgx.Row, user *User) error {
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.ConfirmationCodeHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "scan_user")
	}
	return nil
}
