// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

/*
Package auth implements the passwordless identity system.

Revio has no passwords. A user signs up with an email and a username, receives
a confirmation code through the mail queue, and trades that code for a signed
JWT. Codes are stored only as bcrypt hashes, stay valid until replaced by a
newer signup for the same account, and may be exchanged any number of times.

Architecture:

  - Service: Signup orchestration and code-for-token exchange.
  - Repository: Abstracted interface for Postgres account storage.
  - Notifier: Abstracted delivery sink, backed by a Redis outbox list.
*/
package auth

import (
	"time"

	"github.com/quangdm/revio/internal/platform/sec"
)

// Field length limits for account data.
const (
	MaxUsernameLength  = 150
	MaxEmailLength     = 254
	MaxFirstNameLength = 150
	MaxLastNameLength  = 150
)

// AccessTokenTTL is the lifetime of an issued access token.
const AccessTokenTTL = 24 * time.Hour

// User represents a registered account.
//
// ConfirmationCodeHash holds the bcrypt hash of the latest confirmation code
// issued for this account, or an empty string before the first signup
// completes. The raw code never touches storage.
type User struct {
	ID                   string       `json:"-"`
	Username             string       `json:"username"`
	Email                string       `json:"email"`
	FirstName            string       `json:"first_name"`
	LastName             string       `json:"last_name"`
	Bio                  string       `json:"bio"`
	Role                 sec.UserRole `json:"role"`
	ConfirmationCodeHash string       `json:"-"`
	CreatedAt            time.Time    `json:"-"`
	UpdatedAt            time.Time    `json:"-"`
}
