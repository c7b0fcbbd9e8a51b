// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package auth

import (
	"context"

	"github.com/quangdm/revio/pkg/pagination"
)

// UserRepository defines the storage contract for accounts. It is shared with
// the account package, which implements profile and admin management on top
// of the same table.
type UserRepository interface {
	// Create persists a new account.
	Create(context context.Context, user *User) error

	// FindByUsername retrieves an account by its unique username.
	FindByUsername(context context.Context, username string) (*User, error)

	// FindByEmail retrieves an account by its unique email.
	FindByEmail(context context.Context, email string) (*User, error)

	// Update rewrites the account's mutable profile fields and role.
	Update(context context.Context, user *User) error

	// UpdateConfirmationCode replaces the stored confirmation code hash.
	UpdateConfirmationCode(context context.Context, userID, codeHash string) error

	// List returns a page of accounts, optionally filtered by a
	// case-insensitive username search, plus the total match count.
	List(context context.Context, search string, params pagination.Params) ([]User, int, error)

	// DeleteByUsername removes an account and everything it authored.
	DeleteByUsername(context context.Context, username string) error
}
